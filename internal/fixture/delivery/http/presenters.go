package http

import (
	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/pagination"
)

type listResp struct {
	Records    []fixture.Record
	Pagination pagination.Info
}

func newListResp(out fixture.ListOutput) listResp {
	records := out.Records
	if records == nil {
		records = []fixture.Record{}
	}
	return listResp{Records: records, Pagination: out.Pagination}
}

type cleanupResp struct {
	Removed int `json:"removed"`
}
