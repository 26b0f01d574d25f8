package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Leandrogm81/Compromissos/internal/models"
	"github.com/Leandrogm81/Compromissos/internal/reminder"
)

type AttachCmd struct {
	ID     int64  `arg:"" help:"Reminder id."`
	File   string `arg:"" optional:"" help:"File to attach." type:"existingfile"`
	Remove string `short:"r" help:"Attachment id to remove instead of adding."`
}

func (c *AttachCmd) Validate() error {
	if (c.File == "") == (c.Remove == "") {
		return fmt.Errorf("give either a file to attach or --remove")
	}
	return nil
}

func (c *AttachCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	r, err := ctx.Manager.Get(c.ID)
	if err != nil {
		return err
	}

	attachments := r.Attachments
	if c.Remove != "" {
		kept := attachments[:0]
		found := false
		for _, a := range attachments {
			if a.ID == c.Remove {
				found = true
				continue
			}
			kept = append(kept, a)
		}
		if !found {
			return fmt.Errorf("no attachment %s on reminder %d", c.Remove, c.ID)
		}
		attachments = kept
	} else {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		hash := sha256.Sum256(data)
		mimeType := mime.TypeByExtension(filepath.Ext(c.File))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		attachments = append(attachments, models.Attachment{
			ID:        uuid.New().String(),
			Name:      filepath.Base(c.File),
			Type:      mimeType,
			Size:      int64(len(data)),
			Hash:      hex.EncodeToString(hash[:]),
			Data:      data,
			CreatedAt: time.Now().UTC(),
		})
	}

	if _, err := ctx.Manager.Update(c.ID, reminder.Patch{Attachments: &attachments}); err != nil {
		return err
	}

	if c.Remove != "" {
		fmt.Printf("Removed attachment %s from reminder %d\n", c.Remove, c.ID)
	} else {
		fmt.Printf("Attached %s to reminder %d (%d attachments total)\n", filepath.Base(c.File), c.ID, len(attachments))
	}
	return nil
}
