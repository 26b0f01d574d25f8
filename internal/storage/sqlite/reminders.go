package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

const reminderColumns = `id, title, description, datetime, timezone, lead_times, subtasks,
       icon, status, recurrence, created_at, updated_at`

func (s *Store) AddReminder(r models.Reminder) (int64, error) {
	leadJSON, subtaskJSON, err := marshalReminderFields(r)
	if err != nil {
		return 0, err
	}

	res, err := s.db.Exec(`
		INSERT INTO reminders (
			title, description, datetime, timezone, lead_times, subtasks,
			icon, status, recurrence, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Title, r.Description, r.Datetime.UTC().Format(time.RFC3339), r.Timezone,
		leadJSON, subtaskJSON, r.Icon, string(r.Status), string(r.Recurrence),
		r.CreatedAt.UTC().Format(time.RFC3339), r.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert reminder: %v", apperrors.ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get reminder id: %v", apperrors.ErrStorage, err)
	}

	if err := s.replaceAttachments(id, r.Attachments); err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Store) GetReminder(id int64) (models.Reminder, error) {
	row := s.db.QueryRow(`SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id)

	r, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reminder{}, fmt.Errorf("%w: reminder %d", apperrors.ErrNotFound, id)
		}
		return models.Reminder{}, fmt.Errorf("%w: failed to get reminder %d: %v", apperrors.ErrStorage, id, err)
	}

	attachments, err := s.getAttachments(id)
	if err != nil {
		return models.Reminder{}, err
	}
	r.Attachments = attachments

	return r, nil
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	return s.queryReminders(`SELECT ` + reminderColumns + ` FROM reminders ORDER BY datetime`)
}

func (s *Store) GetRemindersByStatus(status models.Status) ([]models.Reminder, error) {
	return s.queryReminders(
		`SELECT `+reminderColumns+` FROM reminders WHERE status = ? ORDER BY datetime`,
		string(status),
	)
}

func (s *Store) queryReminders(query string, args ...any) ([]models.Reminder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query reminders: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan reminder: %v", apperrors.ErrStorage, err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reminder rows: %v", apperrors.ErrStorage, err)
	}

	for i := range reminders {
		attachments, err := s.getAttachments(reminders[i].ID)
		if err != nil {
			return nil, err
		}
		reminders[i].Attachments = attachments
	}

	return reminders, nil
}

func (s *Store) UpdateReminder(r models.Reminder) error {
	leadJSON, subtaskJSON, err := marshalReminderFields(r)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE reminders SET
			title = ?, description = ?, datetime = ?, timezone = ?, lead_times = ?,
			subtasks = ?, icon = ?, status = ?, recurrence = ?, created_at = ?, updated_at = ?
		WHERE id = ?`,
		r.Title, r.Description, r.Datetime.UTC().Format(time.RFC3339), r.Timezone,
		leadJSON, subtaskJSON, r.Icon, string(r.Status), string(r.Recurrence),
		r.CreatedAt.UTC().Format(time.RFC3339), r.UpdatedAt.UTC().Format(time.RFC3339),
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update reminder %d: %v", apperrors.ErrStorage, r.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check update of reminder %d: %v", apperrors.ErrStorage, r.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: reminder %d", apperrors.ErrNotFound, r.ID)
	}

	return s.replaceAttachments(r.ID, r.Attachments)
}

func (s *Store) DeleteReminder(id int64) error {
	res, err := s.db.Exec("DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete reminder %d: %v", apperrors.ErrStorage, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check delete of reminder %d: %v", apperrors.ErrStorage, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: reminder %d", apperrors.ErrNotFound, id)
	}

	// Attachment rows cascade, but SQLite only honors that with foreign keys
	// enabled, so delete explicitly.
	if _, err := s.db.Exec("DELETE FROM attachments WHERE reminder_id = ?", id); err != nil {
		return fmt.Errorf("%w: failed to delete attachments of reminder %d: %v", apperrors.ErrStorage, id, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (models.Reminder, error) {
	var r models.Reminder
	var datetimeStr, createdStr, updatedStr, leadJSON, subtaskJSON, status, recurrence string

	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &datetimeStr, &r.Timezone, &leadJSON, &subtaskJSON,
		&r.Icon, &status, &recurrence, &createdStr, &updatedStr,
	)
	if err != nil {
		return models.Reminder{}, err
	}

	r.Status = models.Status(status)
	r.Recurrence = models.Recurrence(recurrence)

	if r.Datetime, err = time.Parse(time.RFC3339, datetimeStr); err != nil {
		return models.Reminder{}, fmt.Errorf("invalid datetime %q: %w", datetimeStr, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return models.Reminder{}, fmt.Errorf("invalid created_at %q: %w", createdStr, err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return models.Reminder{}, fmt.Errorf("invalid updated_at %q: %w", updatedStr, err)
	}

	if leadJSON != "" {
		if err := json.Unmarshal([]byte(leadJSON), &r.LeadTimes); err != nil {
			return models.Reminder{}, fmt.Errorf("invalid lead_times %q: %w", leadJSON, err)
		}
	}
	if subtaskJSON != "" {
		if err := json.Unmarshal([]byte(subtaskJSON), &r.Subtasks); err != nil {
			return models.Reminder{}, fmt.Errorf("invalid subtasks %q: %w", subtaskJSON, err)
		}
	}

	return r, nil
}

func marshalReminderFields(r models.Reminder) (leadJSON, subtaskJSON string, err error) {
	leads := r.LeadTimes
	if leads == nil {
		leads = []int{}
	}
	leadBytes, err := json.Marshal(leads)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal lead times: %w", err)
	}

	subtasks := r.Subtasks
	if subtasks == nil {
		subtasks = []models.Subtask{}
	}
	subtaskBytes, err := json.Marshal(subtasks)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal subtasks: %w", err)
	}

	return string(leadBytes), string(subtaskBytes), nil
}

func (s *Store) getAttachments(reminderID int64) ([]models.Attachment, error) {
	rows, err := s.db.Query(`
		SELECT id, name, mime_type, size, hash, data, created_at
		FROM attachments WHERE reminder_id = ? ORDER BY created_at`, reminderID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query attachments: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		var createdStr string
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Size, &a.Hash, &a.Data, &createdStr); err != nil {
			return nil, fmt.Errorf("%w: failed to scan attachment: %v", apperrors.ErrStorage, err)
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("%w: invalid attachment created_at %q: %v", apperrors.ErrStorage, createdStr, err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: attachment rows: %v", apperrors.ErrStorage, err)
	}

	return attachments, nil
}

func (s *Store) replaceAttachments(reminderID int64, attachments []models.Attachment) error {
	if _, err := s.db.Exec("DELETE FROM attachments WHERE reminder_id = ?", reminderID); err != nil {
		return fmt.Errorf("%w: failed to clear attachments of reminder %d: %v", apperrors.ErrStorage, reminderID, err)
	}

	for _, a := range attachments {
		_, err := s.db.Exec(`
			INSERT INTO attachments (id, reminder_id, name, mime_type, size, hash, data, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, reminderID, a.Name, a.Type, a.Size, a.Hash, a.Data,
			a.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("%w: failed to insert attachment %s: %v", apperrors.ErrStorage, a.ID, err)
		}
	}

	return nil
}
