package postgres

import (
	"database/sql"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"

	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve"
	"github.com/marscorp-games/exchange-server/pkg/exchange/data/curve/tests"

	postgrestest "github.com/marscorp-games/exchange-server/pkg/database/postgres/test"

	_ "github.com/jackc/pgx/v4/stdlib"
)

const (
	// Used for testing ONLY, the table and migrations are external to this repository
	tableCreate = `
		CREATE TABLE marscorp__exchange_bondingcurve(
			id SERIAL NOT NULL PRIMARY KEY,

			creator TEXT NOT NULL,
			mint TEXT NOT NULL,
			sector INTEGER NOT NULL,

			virtual_value NUMERIC NOT NULL,
			virtual_tokens NUMERIC NOT NULL,
			real_value BIGINT NOT NULL,

			graduated BOOL NOT NULL,

			takeover_active BOOL NOT NULL,
			takeover_initiator TEXT NOT NULL,

			sabotage_penalty_bps INTEGER NOT NULL,
			sabotage_end_at TIMESTAMP WITH TIME ZONE,

			created_at TIMESTAMP WITH TIME ZONE,
			last_updated_at TIMESTAMP WITH TIME ZONE,

			CONSTRAINT marscorp__exchange_bondingcurve__uniq__mint UNIQUE (mint)
		);
	`

	// Used for testing ONLY, the table and migrations are external to this repository
	tableDestroy = `
		DROP TABLE marscorp__exchange_bondingcurve;
	`
)

var (
	testStore curve.Store
	teardown  func()
)

func TestMain(m *testing.M) {
	log := logrus.StandardLogger()

	testPool, err := dockertest.NewPool("")
	if err != nil {
		log.WithError(err).Error("Error creating docker pool")
		os.Exit(1)
	}

	var cleanUpFunc func()
	db, cleanUpFunc, err := postgrestest.StartPostgresDB(testPool)
	if err != nil {
		log.WithError(err).Error("Error starting postgres image")
		os.Exit(1)
	}
	defer db.Close()

	if err := createTestTables(db); err != nil {
		logrus.StandardLogger().WithError(err).Error("Error creating test tables")
		cleanUpFunc()
		os.Exit(1)
	}

	testStore = New(db)
	teardown = func() {
		if pc := recover(); pc != nil {
			cleanUpFunc()
			panic(pc)
		}

		if err := resetTestTables(db); err != nil {
			logrus.StandardLogger().WithError(err).Error("Error resetting test tables")
			cleanUpFunc()
			os.Exit(1)
		}
	}

	code := m.Run()
	cleanUpFunc()
	os.Exit(code)
}

func TestCurvePostgresStore(t *testing.T) {
	tests.RunTests(t, testStore, teardown)
}

func createTestTables(db *sql.DB) error {
	_, err := db.Exec(tableCreate)
	if err != nil {
		logrus.StandardLogger().WithError(err).Error("could not create test tables")
		return err
	}
	return nil
}

func resetTestTables(db *sql.DB) error {
	_, err := db.Exec(tableDestroy)
	if err != nil {
		logrus.StandardLogger().WithError(err).Error("could not drop test tables")
		return err
	}

	return createTestTables(db)
}
