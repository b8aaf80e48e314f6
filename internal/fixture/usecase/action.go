package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/model"
)

var (
	productsCollection  = CollectionName(model.Products().Descriptor)
	auditLogsCollection = CollectionName(model.AuditLogs().Descriptor)
)

// ToggleStatus flips a product between active and inactive.
func (uc *implUseCase) ToggleStatus(ctx context.Context, id string) (fixture.Record, error) {
	rec, err := uc.get(ctx, productsCollection, id)
	if err != nil {
		return nil, err
	}
	if rec["status"] == model.ProductActive {
		rec["status"] = model.ProductInactive
	} else {
		rec["status"] = model.ProductActive
	}
	rec["updatedAt"] = uc.now().Format(time.RFC3339)
	return uc.save(ctx, productsCollection, rec)
}

// DeleteImage clears the image of a product.
func (uc *implUseCase) DeleteImage(ctx context.Context, id string) (fixture.Record, error) {
	rec, err := uc.get(ctx, productsCollection, id)
	if err != nil {
		return nil, err
	}
	if url, _ := rec["imageUrl"].(string); url == "" {
		return nil, fixture.ErrNoImage
	}
	delete(rec, "imageUrl")
	rec["updatedAt"] = uc.now().Format(time.RFC3339)
	return uc.save(ctx, productsCollection, rec)
}

var auditLogColumns = []string{"id", "createdAt", "userId", "userName", "action", "resource", "resourceId", "details", "ipAddress"}

// Export renders every audit log matching the filters as CSV. Paging is ignored.
func (uc *implUseCase) Export(ctx context.Context, input fixture.ListInput) ([]byte, error) {
	c, err := uc.collection(auditLogsCollection)
	if err != nil {
		return nil, err
	}
	records, _, err := uc.repo.List(ctx, listOptions(c, input.Params))
	if err != nil {
		uc.l.Errorf(ctx, "fixture.usecase.Export.repo.List: %v", err)
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(auditLogColumns); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := make([]string, len(auditLogColumns))
		for i, col := range auditLogColumns {
			if v, ok := rec[col]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Cleanup removes audit logs older than the given number of days.
func (uc *implUseCase) Cleanup(ctx context.Context, input fixture.CleanupInput) (fixture.CleanupOutput, error) {
	if input.OlderThanDays < 1 {
		return fixture.CleanupOutput{}, fmt.Errorf("%w: olderThan must be at least 1 day", fixture.ErrInvalidPayload)
	}
	cutoff := uc.now().AddDate(0, 0, -input.OlderThanDays)

	removed, err := uc.repo.DeleteWhere(ctx, auditLogsCollection, func(rec fixture.Record) bool {
		raw, _ := rec["createdAt"].(string)
		t, err := time.Parse(time.RFC3339, raw)
		return err == nil && t.Before(cutoff)
	})
	if err != nil {
		uc.l.Errorf(ctx, "fixture.usecase.Cleanup.repo.DeleteWhere: %v", err)
		return fixture.CleanupOutput{}, err
	}
	return fixture.CleanupOutput{Removed: removed}, nil
}
