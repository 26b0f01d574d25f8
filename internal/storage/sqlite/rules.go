package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

func (s *Store) AddRule(rule models.ImageAiRule) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO image_ai_rules (name, instruction, created_at) VALUES (?, ?, ?)",
		rule.Name, rule.Instruction, rule.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert rule: %v", apperrors.ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get rule id: %v", apperrors.ErrStorage, err)
	}
	return id, nil
}

func (s *Store) GetRule(id int64) (models.ImageAiRule, error) {
	row := s.db.QueryRow("SELECT id, name, instruction, created_at FROM image_ai_rules WHERE id = ?", id)

	var rule models.ImageAiRule
	var createdStr string
	err := row.Scan(&rule.ID, &rule.Name, &rule.Instruction, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ImageAiRule{}, fmt.Errorf("%w: rule %d", apperrors.ErrNotFound, id)
		}
		return models.ImageAiRule{}, fmt.Errorf("%w: failed to get rule %d: %v", apperrors.ErrStorage, id, err)
	}

	if rule.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return models.ImageAiRule{}, fmt.Errorf("%w: invalid rule created_at %q: %v", apperrors.ErrStorage, createdStr, err)
	}
	return rule, nil
}

func (s *Store) GetAllRules() ([]models.ImageAiRule, error) {
	rows, err := s.db.Query("SELECT id, name, instruction, created_at FROM image_ai_rules ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query rules: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var rules []models.ImageAiRule
	for rows.Next() {
		var rule models.ImageAiRule
		var createdStr string
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Instruction, &createdStr); err != nil {
			return nil, fmt.Errorf("%w: failed to scan rule: %v", apperrors.ErrStorage, err)
		}
		if rule.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("%w: invalid rule created_at %q: %v", apperrors.ErrStorage, createdStr, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rule rows: %v", apperrors.ErrStorage, err)
	}

	return rules, nil
}

func (s *Store) DeleteRule(id int64) error {
	res, err := s.db.Exec("DELETE FROM image_ai_rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete rule %d: %v", apperrors.ErrStorage, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check delete of rule %d: %v", apperrors.ErrStorage, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: rule %d", apperrors.ErrNotFound, id)
	}
	return nil
}
