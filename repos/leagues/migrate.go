package leagues

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
)

// NameResolver returns the display name to use for a participant email, or
// "" when none is known.
type NameResolver func(ctx context.Context, email string) string

type MigrationOptions struct {
	Rollback bool
	DryRun   bool
	Names    NameResolver
}

type MigrationReport struct {
	Migrated int
	Skipped  int
	Errors   int
}

func (r MigrationReport) String() string {
	return fmt.Sprintf("migrated: %d, skipped: %d, errors: %d", r.Migrated, r.Skipped, r.Errors)
}

// MigrateParticipants rewrites every league's participant list between the
// legacy bare email encoding and the {email, league_user_name} encoding.
// Running it twice is a no-op the second time.
func (s *Service) MigrateParticipants(ctx context.Context, opts MigrationOptions) (MigrationReport, error) {
	var report MigrationReport

	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return report, xerrors.Errorf("failed to iterate leagues: %w", err)
		}

		log := zap.L().With(zap.String("league_id", doc.Ref.ID))
		raw, _ := doc.Data()["participants"].([]interface{})

		var (
			converted []interface{}
			emails    []string
			changed   bool
		)
		if opts.Rollback {
			converted, emails, changed = downgradeParticipants(raw)
		} else {
			converted, emails, changed = upgradeParticipants(ctx, raw, opts.Names)
		}
		if !changed && emailsDiffer(doc.Data()["participantEmails"], emails) {
			changed = true
		}
		if !changed {
			report.Skipped++
			continue
		}
		if opts.DryRun {
			log.Info("would rewrite participants", zap.Int("participants", len(converted)))
			report.Migrated++
			continue
		}

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "participants", Value: converted},
			{Path: "participantEmails", Value: emails},
		})
		if err != nil {
			log.Error("failed to rewrite participants", zap.Error(err))
			report.Errors++
			continue
		}
		log.Info("rewrote participants", zap.Int("participants", len(converted)))
		report.Migrated++
	}

	return report, nil
}

// emailsDiffer reports whether the stored participantEmails field does not
// match emails, including when the field is missing.
func emailsDiffer(stored interface{}, emails []string) bool {
	list, ok := stored.([]interface{})
	if !ok {
		return true
	}
	if len(list) != len(emails) {
		return true
	}
	for i, v := range list {
		if s, _ := v.(string); s != emails[i] {
			return true
		}
	}
	return false
}

// upgradeParticipants converts bare emails to participant objects.
func upgradeParticipants(ctx context.Context, raw []interface{}, names NameResolver) ([]interface{}, []string, bool) {
	out := make([]interface{}, 0, len(raw))
	emails := make([]string, 0, len(raw))
	changed := false

	for _, item := range raw {
		switch v := item.(type) {
		case string:
			name := ""
			if names != nil {
				name = names(ctx, v)
			}
			if name == "" {
				name = v
			}
			out = append(out, map[string]interface{}{"email": v, "league_user_name": name})
			emails = append(emails, v)
			changed = true
		case map[string]interface{}:
			out = append(out, v)
			email, _ := v["email"].(string)
			emails = append(emails, email)
		default:
			s := fmt.Sprint(v)
			out = append(out, map[string]interface{}{"email": s, "league_user_name": s})
			emails = append(emails, s)
			changed = true
		}
	}
	return out, emails, changed
}

// downgradeParticipants converts participant objects back to bare emails.
func downgradeParticipants(raw []interface{}) ([]interface{}, []string, bool) {
	out := make([]interface{}, 0, len(raw))
	emails := make([]string, 0, len(raw))
	changed := false

	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, v)
			emails = append(emails, v)
		case map[string]interface{}:
			email, _ := v["email"].(string)
			out = append(out, email)
			emails = append(emails, email)
			changed = true
		default:
			s := fmt.Sprint(v)
			out = append(out, s)
			emails = append(emails, s)
			changed = true
		}
	}
	return out, emails, changed
}
