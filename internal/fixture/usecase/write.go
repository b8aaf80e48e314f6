package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/fixture/repository"
	"admin-datagrid/internal/model"
)

// Create stores a new record. The server assigns id and timestamps.
func (uc *implUseCase) Create(ctx context.Context, name string, rec fixture.Record) (fixture.Record, error) {
	c, err := uc.collection(name)
	if err != nil {
		return nil, err
	}
	if c.desc.ReadOnly {
		return nil, fixture.ErrReadOnly
	}

	now := uc.now().Format(time.RFC3339)
	out := rec.Clone()
	if out == nil {
		out = fixture.Record{}
	}
	out["id"] = uuid.NewString()
	out["createdAt"] = now
	out["updatedAt"] = now
	if name == CollectionName(model.Products().Descriptor) {
		if _, ok := out["status"]; !ok {
			out["status"] = model.ProductActive
		}
		if err := uc.checkSKU(ctx, name, out); err != nil {
			return nil, err
		}
	}

	if err := validate(c, out); err != nil {
		return nil, err
	}

	created, err := uc.repo.Insert(ctx, name, out)
	if err != nil {
		uc.l.Errorf(ctx, "fixture.usecase.Create.repo.Insert %s: %v", name, err)
		return nil, err
	}
	return created, nil
}

// Update merges rec into the stored record. id and createdAt are kept.
func (uc *implUseCase) Update(ctx context.Context, name, id string, rec fixture.Record) (fixture.Record, error) {
	c, err := uc.collection(name)
	if err != nil {
		return nil, err
	}
	if c.desc.ReadOnly {
		return nil, fixture.ErrReadOnly
	}

	current, err := uc.get(ctx, name, id)
	if err != nil {
		return nil, err
	}
	for k, v := range rec {
		if k == "id" || k == "createdAt" {
			continue
		}
		current[k] = v
	}
	current["updatedAt"] = uc.now().Format(time.RFC3339)

	if name == CollectionName(model.Products().Descriptor) {
		if err := uc.checkSKU(ctx, name, current); err != nil {
			return nil, err
		}
	}
	if err := validate(c, current); err != nil {
		return nil, err
	}
	return uc.save(ctx, name, current)
}

// Delete removes one record.
func (uc *implUseCase) Delete(ctx context.Context, name, id string) error {
	c, err := uc.collection(name)
	if err != nil {
		return err
	}
	if c.desc.ReadOnly {
		return fixture.ErrReadOnly
	}

	if err := uc.repo.Delete(ctx, name, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fixture.ErrRecordNotFound
		}
		uc.l.Errorf(ctx, "fixture.usecase.Delete.repo.Delete %s/%s: %v", name, id, err)
		return err
	}
	return nil
}

func (uc *implUseCase) get(ctx context.Context, name, id string) (fixture.Record, error) {
	rec, err := uc.repo.GetOne(ctx, repository.GetOneOptions{Collection: name, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "fixture.usecase.get.repo.GetOne %s/%s: %v", name, id, err)
		return nil, err
	}
	if rec == nil {
		return nil, fixture.ErrRecordNotFound
	}
	return rec, nil
}

func (uc *implUseCase) save(ctx context.Context, name string, rec fixture.Record) (fixture.Record, error) {
	updated, err := uc.repo.Update(ctx, name, rec.ID(), rec)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fixture.ErrRecordNotFound
		}
		uc.l.Errorf(ctx, "fixture.usecase.save.repo.Update %s/%s: %v", name, rec.ID(), err)
		return nil, err
	}
	return updated, nil
}

func (uc *implUseCase) checkSKU(ctx context.Context, name string, rec fixture.Record) error {
	sku, _ := rec["sku"].(string)
	if sku == "" {
		return nil
	}
	other, err := uc.repo.GetOne(ctx, repository.GetOneOptions{Collection: name, Field: "sku", Value: sku})
	if err != nil {
		return err
	}
	if other != nil && other.ID() != rec.ID() {
		return fixture.ErrDuplicateSKU
	}
	return nil
}

func validate(c collection, rec fixture.Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", fixture.ErrInvalidPayload, err)
	}
	if err := c.validator.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", fixture.ErrInvalidPayload, err)
	}
	return nil
}
