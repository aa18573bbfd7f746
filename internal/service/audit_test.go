package service

import (
	"testing"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecordComputesChangedFields(t *testing.T) {
	env := newTestEnv(t)

	before := testutils.NewDriverFactory().Create()
	after := *before
	after.Name = "Renamed Driver"
	after.Phone = "+1-555-0199"
	after.UpdatedAt = after.UpdatedAt.Add(1) // moves on every save, carries no signal

	env.audit.Record("driver", before.ID, models.AuditOperationUpdate, before, &after, "tester")

	trail, total, err := env.audit.ListByEntity("driver", before.ID, 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	entry := trail[0]
	assert.Equal(t, models.AuditOperationUpdate, entry.Operation)
	assert.Equal(t, "tester", entry.Actor)
	assert.ElementsMatch(t, []string{"name", "phone"}, entry.ChangedFields)
	assert.NotEmpty(t, entry.Before)
	assert.NotEmpty(t, entry.After)
}

func TestAuditRecordInsertAndDelete(t *testing.T) {
	env := newTestEnv(t)
	driver := testutils.NewDriverFactory().Create()

	env.audit.Record("driver", driver.ID, models.AuditOperationInsert, nil, driver, "tester")
	env.audit.Record("driver", driver.ID, models.AuditOperationDelete, driver, nil, "tester")

	trail, total, err := env.audit.ListByEntity("driver", driver.ID, 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	for _, entry := range trail {
		switch entry.Operation {
		case models.AuditOperationInsert:
			assert.Empty(t, entry.Before)
			assert.NotEmpty(t, entry.After)
		case models.AuditOperationDelete:
			assert.NotEmpty(t, entry.Before)
			assert.Empty(t, entry.After)
		default:
			t.Fatalf("unexpected operation %s", entry.Operation)
		}
	}
}

func TestAuditListByKind(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		env.audit.Record("vehicle", uuid.New(), models.AuditOperationInsert, nil,
			testutils.NewVehicleFactory().Create(), "tester")
	}
	env.audit.Record("driver", uuid.New(), models.AuditOperationInsert, nil,
		testutils.NewDriverFactory().Create(), "tester")

	entries, total, err := env.audit.ListByKind("vehicle", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, entries, 2)
}
