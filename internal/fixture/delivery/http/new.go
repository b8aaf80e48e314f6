package http

import (
	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/model"
	"admin-datagrid/pkg/log"
)

type handler struct {
	l     log.Logger
	uc    fixture.UseCase
	descs []model.Descriptor
}

// New creates the HTTP handler serving descs.
func New(l log.Logger, uc fixture.UseCase, descs []model.Descriptor) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		descs: descs,
	}
}
