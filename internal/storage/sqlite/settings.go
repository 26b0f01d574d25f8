package sqlite

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Leandrogm81/Compromissos/internal/constants"
	"github.com/Leandrogm81/Compromissos/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.NotificationsEnabled = enabled
		case constants.SettingDefaultLeadTimes:
			if err := json.Unmarshal([]byte(value), &settings.DefaultLeadTimes); err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	leadJSON, err := json.Marshal(settings.DefaultLeadTimes)
	if err != nil {
		return fmt.Errorf("failed to marshal default lead times: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(constants.SettingTimezone, settings.Timezone); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingNotificationsEnabled, strconv.FormatBool(settings.NotificationsEnabled)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingDefaultLeadTimes, string(leadJSON)); err != nil {
		return err
	}

	return tx.Commit()
}
