package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bySeq orders rows by insertion
var bySeq = clause.OrderByColumn{Column: clause.Column{Name: "seq"}}

// invalid_text_representation, raised when a malformed uuid reaches postgres
const pgInvalidTextRepresentation = "22P02"

// parseID accepts only the canonical lowercase hyphenated form the stores hand out,
// so the same text matches the same document in every store and lookup path
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil || uid.String() != id {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return uid, nil
}

// parseIDs keeps the well-formed ids only
func parseIDs(ids []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		uid, err := parseID(id)
		if err != nil {
			continue
		}
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		out = append(out, uid)
	}
	return out
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return fmt.Errorf("%w: %s", ErrInvalidID, pgErr.Message)
	}
	return err
}
