package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	casefilerepository "github.com/juristech/legara/internal/casefile/repository"
	casefileservice "github.com/juristech/legara/internal/casefile/service"
	"github.com/juristech/legara/internal/casenumber"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/config"
	departmentdomain "github.com/juristech/legara/internal/department/domain"
	departmentrepository "github.com/juristech/legara/internal/department/repository"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	firmrepository "github.com/juristech/legara/internal/firm/repository"
	"github.com/juristech/legara/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingEmail struct {
	subjects []string
	bodies   []string
}

func (r *recordingEmail) Send(_ context.Context, _ []string, subject, body string) error {
	r.subjects = append(r.subjects, subject)
	r.bodies = append(r.bodies, body)
	return nil
}

type recordingSlack struct {
	messages []string
}

func (r *recordingSlack) PostMessage(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func TestOverdueDigestJob(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&firmdomain.Firm{},
		&departmentdomain.Department{},
		&casenumber.CaseCounter{},
		&casefiledomain.CaseFile{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))

	firm := firmdomain.Firm{
		ID: node.Generate(), Name: "Acme Collections", Prefix: "ACME",
		ContactEmail: "ops@acme.example", Metadata: datatypes.JSONMap{},
		CreatedAt: clk.Now(), UpdatedAt: clk.Now(),
	}
	require.NoError(t, db.Create(&firm).Error)

	newCase := func(number string, openedDaysAgo int) {
		t.Helper()
		cf := casefiledomain.CaseFile{
			ID: node.Generate(), FirmID: firm.ID, DepartmentID: node.Generate(),
			Number: number, Type: casefiledomain.TypeCredit,
			Status: casefiledomain.StatusOpen, DebtorName: "Debtor Inc",
			Principal: 5_000, OpenedAt: clk.Now().AddDate(0, 0, -openedDaysAgo),
			Metadata: datatypes.JSONMap{}, CreatedAt: clk.Now(), UpdatedAt: clk.Now(),
		}
		require.NoError(t, db.Create(&cf).Error)
	}
	newCase("ACME-COLL-2024-0001", 120)
	newCase("ACME-COLL-2024-0002", 10)

	policy := config.NewStaticCollectionsPolicyHolder(config.DefaultCollectionsPolicy())
	allocator := casenumber.NewAllocator(casenumber.Params{
		Store:    casenumber.NewGormStore(db, clk),
		Lookup:   casenumber.NewGormCaseLookup(db),
		Metadata: casenumber.NewGormMetadata(db),
		Clock:    clk,
		Log:      zap.NewNop(),
	})
	cases := casefileservice.NewService(casefileservice.Params{
		DB:        db,
		Repo:      casefilerepository.NewRepository(db),
		Depts:     departmentrepository.NewRepository(db),
		Allocator: allocator,
		Policy:    policy,
		GenID:     node,
		Clock:     clk,
		Log:       zap.NewNop(),
	})

	emailer := &recordingEmail{}
	slacker := &recordingSlack{}
	notifier := notification.NewNotifier(notification.Params{
		Email: emailer,
		Slack: slacker,
		Log:   zap.NewNop(),
	})

	sched, err := New(Params{
		Firms:    firmrepository.NewRepository(db),
		Cases:    cases,
		Policy:   policy,
		Notifier: notifier,
		Clock:    clk,
		Log:      zap.NewNop(),
	})
	require.NoError(t, err)

	require.NoError(t, sched.RunOnce(context.Background()))

	// Only the 120-day case is overdue; the digest reports just it.
	require.Len(t, emailer.bodies, 1)
	assert.Contains(t, emailer.bodies[0], "ACME-COLL-2024-0001")
	assert.NotContains(t, emailer.bodies[0], "ACME-COLL-2024-0002")
	require.Len(t, slacker.messages, 1)
	assert.Contains(t, slacker.messages[0], "1 overdue cases")

	// Nothing overdue for a firm means no digest at all.
	require.NoError(t, db.Exec(`UPDATE case_files SET status = ?`, casefiledomain.StatusClosed).Error)
	require.NoError(t, sched.RunOnce(context.Background()))
	assert.Len(t, emailer.bodies, 1)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
