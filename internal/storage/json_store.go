package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Leandrogm81/Compromissos/internal/apperrors"
	"github.com/Leandrogm81/Compromissos/internal/constants"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

type jsonFile struct {
	Version        int                          `json:"version"`
	Settings       models.Settings              `json:"settings"`
	NextReminderID int64                        `json:"next_reminder_id"`
	NextRuleID     int64                        `json:"next_rule_id"`
	Reminders      map[int64]models.Reminder    `json:"reminders"`
	Rules          map[int64]models.ImageAiRule `json:"rules"`
}

// JSONStore is a single-file alternative to the SQLite backend, mainly for
// portability and debugging. Selected when the config path ends in ".json".
type JSONStore struct {
	path  string
	store *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonFile{
		Version: 1,
		Settings: models.Settings{
			Timezone:             constants.DefaultTimezone,
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
			DefaultLeadTimes:     constants.DefaultLeadTimes,
		},
		NextReminderID: 1,
		NextRuleID:     1,
		Reminders:      make(map[int64]models.Reminder),
		Rules:          make(map[int64]models.ImageAiRule),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'compromissos init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonFile{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Reminders == nil {
		s.store.Reminders = make(map[int64]models.Reminder)
	}
	if s.store.Rules == nil {
		s.store.Rules = make(map[int64]models.ImageAiRule)
	}
	if s.store.NextReminderID < 1 {
		s.store.NextReminderID = 1
	}
	if s.store.NextRuleID < 1 {
		s.store.NextRuleID = 1
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to serialize storage: %v", apperrors.ErrStorage, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write storage: %v", apperrors.ErrStorage, err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddReminder(r models.Reminder) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	r.ID = s.store.NextReminderID
	s.store.NextReminderID++
	s.store.Reminders[r.ID] = r

	if err := s.save(); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (s *JSONStore) GetReminder(id int64) (models.Reminder, error) {
	if s.store == nil {
		return models.Reminder{}, fmt.Errorf("storage not loaded")
	}

	r, ok := s.store.Reminders[id]
	if !ok {
		return models.Reminder{}, fmt.Errorf("%w: reminder %d", apperrors.ErrNotFound, id)
	}

	return r, nil
}

func (s *JSONStore) GetAllReminders() ([]models.Reminder, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	reminders := make([]models.Reminder, 0, len(s.store.Reminders))
	for _, r := range s.store.Reminders {
		reminders = append(reminders, r)
	}
	sortByDatetime(reminders)

	return reminders, nil
}

func (s *JSONStore) GetRemindersByStatus(status models.Status) ([]models.Reminder, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var reminders []models.Reminder
	for _, r := range s.store.Reminders {
		if r.Status == status {
			reminders = append(reminders, r)
		}
	}
	sortByDatetime(reminders)

	return reminders, nil
}

func (s *JSONStore) UpdateReminder(r models.Reminder) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Reminders[r.ID]; !ok {
		return fmt.Errorf("%w: reminder %d", apperrors.ErrNotFound, r.ID)
	}

	s.store.Reminders[r.ID] = r
	return s.save()
}

func (s *JSONStore) DeleteReminder(id int64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Reminders[id]; !ok {
		return fmt.Errorf("%w: reminder %d", apperrors.ErrNotFound, id)
	}

	delete(s.store.Reminders, id)
	return s.save()
}

func (s *JSONStore) AddRule(rule models.ImageAiRule) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	rule.ID = s.store.NextRuleID
	s.store.NextRuleID++
	s.store.Rules[rule.ID] = rule

	if err := s.save(); err != nil {
		return 0, err
	}
	return rule.ID, nil
}

func (s *JSONStore) GetRule(id int64) (models.ImageAiRule, error) {
	if s.store == nil {
		return models.ImageAiRule{}, fmt.Errorf("storage not loaded")
	}

	rule, ok := s.store.Rules[id]
	if !ok {
		return models.ImageAiRule{}, fmt.Errorf("%w: rule %d", apperrors.ErrNotFound, id)
	}
	return rule, nil
}

func (s *JSONStore) GetAllRules() ([]models.ImageAiRule, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rules := make([]models.ImageAiRule, 0, len(s.store.Rules))
	for _, rule := range s.store.Rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].CreatedAt.Before(rules[j].CreatedAt)
	})

	return rules, nil
}

func (s *JSONStore) DeleteRule(id int64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Rules[id]; !ok {
		return fmt.Errorf("%w: rule %d", apperrors.ErrNotFound, id)
	}

	delete(s.store.Rules, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func sortByDatetime(reminders []models.Reminder) {
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].Datetime.Equal(reminders[j].Datetime) {
			return reminders[i].ID < reminders[j].ID
		}
		return reminders[i].Datetime.Before(reminders[j].Datetime)
	})
}
