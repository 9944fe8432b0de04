package ioexport_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/internal/iodb"
	"github.com/gnames/ppcollect/internal/ioexport"
	"github.com/gnames/ppcollect/internal/ioschema"
	"github.com/gnames/ppcollect/internal/iotesting"
	"github.com/gnames/ppcollect/pkg/errcode"
	"github.com/gnames/ppcollect/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportNotConnected(t *testing.T) {
	exp := ioexport.New(iodb.NewPgxOperator(), iotesting.GetTestConfig())
	_, err := exp.Export(context.Background(), sample())
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestExport(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	// small batches exercise several CopyFrom calls
	cfg.Database.BatchSize = 1

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	exp := ioexport.New(op, cfg)
	for range 2 {
		n, err := exp.Export(ctx, sample())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	}

	var count int
	err := op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM "+schema.PowerPlantsTable).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "second export replaces the first one")

	var name string
	var capacity *float64
	err = op.Pool().QueryRow(ctx,
		"SELECT name, capacity FROM "+schema.PowerPlantsTable+
			" WHERE row_id = 1").Scan(&name, &capacity)
	require.NoError(t, err)
	assert.Equal(t, "Kaprun", name)
	assert.Nil(t, capacity)
}
