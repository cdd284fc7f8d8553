package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

// ListApplicationsByApplicant returns the applications submitted by email
func (d *PostgresStore) ListApplicationsByApplicant(ctx context.Context, email string) ([]model.Document, error) {
	return d.findApplications(ctx, "doc->>'applicantEmail' = ?", email)
}

// ListApplicationsByJob returns the applications whose jobId equals jobID
func (d *PostgresStore) ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Document, error) {
	return d.findApplications(ctx, "doc->>'jobId' = ?", jobID)
}

func (d *PostgresStore) findApplications(ctx context.Context, query string, args ...interface{}) ([]model.Document, error) {
	var rows []model.ApplicationRecord
	if err := d.WithContext(ctx).Where(query, args...).Order(bySeq).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	docs := make([]model.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.Document())
	}
	return docs, nil
}

// InsertApplication stores a new application. A client supplied _id is replaced by a generated one.
func (d *PostgresStore) InsertApplication(ctx context.Context, doc model.Document) (model.InsertResult, error) {
	row := model.ApplicationRecord{
		ID:  uuid.New(),
		Doc: doc.WithoutID(),
	}
	if err := d.WithContext(ctx).Create(&row).Error; err != nil {
		return model.InsertResult{}, translateError(err)
	}
	return model.InsertResult{Acknowledged: true, InsertedID: row.ID.String()}, nil
}

// UpdateApplicationStatus sets the status field of one application.
// ModifiedCount is 0 when the application already had that status.
func (d *PostgresStore) UpdateApplicationStatus(ctx context.Context, id string, status string) (model.UpdateResult, error) {
	uid, err := parseID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	result := model.UpdateResult{Acknowledged: true}
	tx := d.WithContext(ctx).Model(&model.ApplicationRecord{})

	if err := tx.Where("id = ?", uid).Count(&result.MatchedCount).Error; err != nil {
		return model.UpdateResult{}, translateError(err)
	}
	if result.MatchedCount == 0 {
		return result, nil
	}

	res := d.WithContext(ctx).Model(&model.ApplicationRecord{}).
		Where("id = ? AND (doc->>'status') IS DISTINCT FROM ?", uid, status).
		Update("doc", gorm.Expr("jsonb_set(doc, '{status}', to_jsonb(?::text), true)", status))
	if res.Error != nil {
		return model.UpdateResult{}, translateError(res.Error)
	}
	result.ModifiedCount = res.RowsAffected
	return result, nil
}

// DeleteApplication removes one application
func (d *PostgresStore) DeleteApplication(ctx context.Context, id string) (model.DeleteResult, error) {
	uid, err := parseID(id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	res := d.WithContext(ctx).Where("id = ?", uid).Delete(&model.ApplicationRecord{})
	if res.Error != nil {
		return model.DeleteResult{}, translateError(res.Error)
	}
	return model.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

// CountApplicationsByJob counts the applications referencing jobID
func (d *PostgresStore) CountApplicationsByJob(ctx context.Context, jobID string) (int64, error) {
	var count int64
	if err := d.WithContext(ctx).
		Model(&model.ApplicationRecord{}).
		Where("doc->>'jobId' = ?", jobID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

type jobApplicationCount struct {
	JobID string
	Total int64
}

// CountApplicationsByJobs counts applications for several jobs with one grouped query
func (d *PostgresStore) CountApplicationsByJobs(ctx context.Context, jobIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(jobIDs))
	for _, id := range jobIDs {
		out[id] = 0
	}
	if len(jobIDs) == 0 {
		return out, nil
	}

	var rows []jobApplicationCount
	if err := d.WithContext(ctx).
		Model(&model.ApplicationRecord{}).
		Select("doc->>'jobId' AS job_id, COUNT(*) AS total").
		Where("doc->>'jobId' = ANY(?)", pq.Array(jobIDs)).
		Group("doc->>'jobId'").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	for _, row := range rows {
		out[row.JobID] = row.Total
	}
	return out, nil
}
