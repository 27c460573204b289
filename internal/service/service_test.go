package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"crm-renewal-be/internal/model"
	"crm-renewal-be/internal/testutil"
	"crm-renewal-be/pkg/events"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type logEntry struct {
	Level   string
	Module  string
	Message string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, module, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{Level: level, Module: module, Message: message})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("debug", module, message)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("info", module, message)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("warn", module, message)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("error", module, message)
}

func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) modules() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		out = append(out, e.Module)
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

type seeded struct {
	db       *gorm.DB
	tenant   *testutil.Tenant
	partner  *model.Partner
	customer *model.Customer
}

func seed(t *testing.T) *seeded {
	db := testutil.NewTestDB(t)
	tenant := testutil.SeedTenant(t, db, "Northwind", "Backup Suite")
	partner := testutil.SeedPartner(t, db, tenant.Admin.Id, "Reseller One", "Bob", "Builder")
	customer := testutil.SeedCustomer(t, db, tenant.Admin.Id, &partner.Id, "Acme Corp", "Road Runner")
	return &seeded{db: db, tenant: tenant, partner: partner, customer: customer}
}
