package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

// ListJobs returns every job in insertion order
func (d *PostgresStore) ListJobs(ctx context.Context) ([]model.Document, error) {
	var rows []model.JobRecord
	if err := d.WithContext(ctx).Order(bySeq).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return jobDocuments(rows), nil
}

// ListJobsByEmployer returns the jobs posted by the given hr_email
func (d *PostgresStore) ListJobsByEmployer(ctx context.Context, email string) ([]model.Document, error) {
	var rows []model.JobRecord
	if err := d.WithContext(ctx).
		Where("doc->>'hr_email' = ?", email).
		Order(bySeq).
		Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return jobDocuments(rows), nil
}

// FindJob fetches one job by id
func (d *PostgresStore) FindJob(ctx context.Context, id string) (model.Document, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var row model.JobRecord
	if err := d.WithContext(ctx).Where("id = ?", uid).First(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.Document(), nil
}

// FindJobs fetches several jobs with a single query
func (d *PostgresStore) FindJobs(ctx context.Context, ids []string) (map[string]model.Document, error) {
	out := make(map[string]model.Document)
	uids := parseIDs(ids)
	if len(uids) == 0 {
		return out, nil
	}

	var rows []model.JobRecord
	if err := d.WithContext(ctx).Where("id IN ?", uids).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	for _, row := range rows {
		out[row.ID.String()] = row.Document()
	}
	return out, nil
}

// InsertJob stores a new job. A client supplied _id is replaced by a generated one.
func (d *PostgresStore) InsertJob(ctx context.Context, doc model.Document) (model.InsertResult, error) {
	row := model.JobRecord{
		ID:  uuid.New(),
		Doc: doc.WithoutID(),
	}
	if err := d.WithContext(ctx).Create(&row).Error; err != nil {
		return model.InsertResult{}, translateError(err)
	}
	return model.InsertResult{Acknowledged: true, InsertedID: row.ID.String()}, nil
}

func jobDocuments(rows []model.JobRecord) []model.Document {
	docs := make([]model.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.Document())
	}
	return docs
}
