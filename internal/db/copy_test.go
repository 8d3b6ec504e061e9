package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.Background(), nil, "power_plants", []string{"oris_code", "plant_name"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"power_plants"}, []string{"oris_code", "plant_name"}).WillReturnResult(3)

	rows := [][]any{{57, "Sand Point"}, {6452, "Barton Chapel"}, {7063, "Comanche Peak"}}
	n, err := CopyFrom(context.Background(), mock, "power_plants", []string{"oris_code", "plant_name"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"power_plants"}, []string{"oris_code"}).WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{57}}
	_, err = CopyFrom(context.Background(), mock, "power_plants", []string{"oris_code"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO power_plants")
	assert.NoError(t, mock.ExpectationsWereMet())
}
