package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/pkg/errors"
)

// LexiconRepository is the PostgreSQL store of the triage reference data.
// It implements both lexicon.Repository and lexicon.Writer.
type LexiconRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewLexiconRepository builds a LexiconRepository.
func NewLexiconRepository(pool *pgxpool.Pool, log logging.Logger) *LexiconRepository {
	return &LexiconRepository{pool: pool, logger: log.Named("lexicon_repo")}
}

func (r *LexiconRepository) ListSymptoms(ctx context.Context) ([]lexicon.Symptom, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, alternative_names FROM symptoms ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "failed to list symptoms")
	}
	defer rows.Close()

	var out []lexicon.Symptom
	for rows.Next() {
		var s lexicon.Symptom
		if err := rows.Scan(&s.ID, &s.Name, &s.AlternativeNames); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeReferenceCorrupt, "failed to scan symptom row")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "symptom row iteration failed")
	}
	return out, nil
}

func (r *LexiconRepository) ListEmergencyKeywords(ctx context.Context) ([]lexicon.EmergencyKeyword, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, keyword, severity, response_message FROM emergency_keywords ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "failed to list emergency keywords")
	}
	defer rows.Close()

	var out []lexicon.EmergencyKeyword
	for rows.Next() {
		var kw lexicon.EmergencyKeyword
		if err := rows.Scan(&kw.ID, &kw.Keyword, &kw.Severity, &kw.ResponseMessage); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeReferenceCorrupt, "failed to scan keyword row")
		}
		out = append(out, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "keyword row iteration failed")
	}
	return out, nil
}

func (r *LexiconRepository) ListConditions(ctx context.Context) ([]lexicon.Condition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, common_symptoms FROM conditions ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "failed to list conditions")
	}
	defer rows.Close()

	var conditions []lexicon.Condition
	index := make(map[int64]int)
	for rows.Next() {
		var c lexicon.Condition
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CommonSymptoms); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeReferenceCorrupt, "failed to scan condition row")
		}
		index[c.ID] = len(conditions)
		conditions = append(conditions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "condition row iteration failed")
	}

	faRows, err := r.pool.Query(ctx,
		`SELECT id, condition_id, title, steps, warning_notes, when_to_seek_help
		 FROM first_aid_procedures ORDER BY condition_id, id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "failed to list first aid procedures")
	}
	defer faRows.Close()

	for faRows.Next() {
		var fa lexicon.FirstAid
		var conditionID int64
		if err := faRows.Scan(&fa.ID, &conditionID, &fa.Title, &fa.Steps,
			&fa.WarningNotes, &fa.WhenToSeekHelp); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeReferenceCorrupt, "failed to scan first aid row")
		}
		if i, ok := index[conditionID]; ok {
			conditions[i].FirstAid = append(conditions[i].FirstAid, fa)
		}
	}
	if err := faRows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReferenceUnavailable, "first aid row iteration failed")
	}
	return conditions, nil
}

func (r *LexiconRepository) ReplaceSymptoms(ctx context.Context, symptoms []lexicon.Symptom) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to begin symptom seed")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM symptoms`); err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to clear symptoms")
	}
	for _, s := range symptoms {
		if _, err := tx.Exec(ctx,
			`INSERT INTO symptoms (name, alternative_names) VALUES ($1, $2)`,
			s.Name, s.AlternativeNames); err != nil {
			return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to insert symptom")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to commit symptom seed")
	}
	r.logger.Info("seeded symptoms", logging.Int("count", len(symptoms)))
	return nil
}

func (r *LexiconRepository) ReplaceEmergencyKeywords(ctx context.Context, keywords []lexicon.EmergencyKeyword) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to begin keyword seed")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM emergency_keywords`); err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to clear emergency keywords")
	}
	for _, kw := range keywords {
		if _, err := tx.Exec(ctx,
			`INSERT INTO emergency_keywords (keyword, severity, response_message)
			 VALUES ($1, $2, $3)`,
			kw.Keyword, kw.Severity, kw.ResponseMessage); err != nil {
			return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to insert emergency keyword")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to commit keyword seed")
	}
	r.logger.Info("seeded emergency keywords", logging.Int("count", len(keywords)))
	return nil
}

func (r *LexiconRepository) ReplaceConditions(ctx context.Context, conditions []lexicon.Condition) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to begin condition seed")
	}
	defer tx.Rollback(ctx)

	// first_aid_procedures cascades from conditions.
	if _, err := tx.Exec(ctx, `DELETE FROM conditions`); err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to clear conditions")
	}
	for _, c := range conditions {
		var conditionID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO conditions (name, description, common_symptoms)
			 VALUES ($1, $2, $3) RETURNING id`,
			c.Name, c.Description, c.CommonSymptoms).Scan(&conditionID); err != nil {
			return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to insert condition")
		}
		for _, fa := range c.FirstAid {
			if _, err := tx.Exec(ctx,
				`INSERT INTO first_aid_procedures
				 (condition_id, title, steps, warning_notes, when_to_seek_help)
				 VALUES ($1, $2, $3, $4, $5)`,
				conditionID, fa.Title, fa.Steps, fa.WarningNotes, fa.WhenToSeekHelp); err != nil {
				return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to insert first aid procedure")
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeSeedFailed, "failed to commit condition seed")
	}
	r.logger.Info("seeded conditions", logging.Int("count", len(conditions)))
	return nil
}

var (
	_ lexicon.Repository = (*LexiconRepository)(nil)
	_ lexicon.Writer     = (*LexiconRepository)(nil)
)
