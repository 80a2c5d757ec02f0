package connection

import (
	"context"
	"errors"
	"fmt"
	"hoa/packages/common/config"
	Error "hoa/packages/common/errors"
	"hoa/packages/common/logger"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var connectionLogger = logger.NewSource("CONNECTION", logger.Default)

// Tables which must exist before app starts serving requests.
var Tables = []string{"users", "events", "posts", "comments", "meetings", "meeting_minutes"}

type Manager struct {
	PrimaryPool   *pgxpool.Pool
	ReplicaPool   *pgxpool.Pool
	PrimaryConfig *pgxpool.Config
	isConnected   bool
}

type Type byte

const (
	Primary Type = 1 << iota
	Replica
)

func (t Type) String() string {
	if t == Primary {
		return "primary"
	}
	return "replica"
}

func newConfig(user, password, host, port, dbName string) *pgxpool.Config {
	connectionLogger.Trace("Creating connection config...", nil)

	conConfig, err := pgxpool.ParseConfig(fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s", user, password, host, port, dbName,
	))
	if err != nil {
		connectionLogger.Fatal("Failed to parse connection URI", err.Error(), nil)
	}

	conConfig.MinConns = config.DB.MinConns
	conConfig.MaxConns = config.DB.MaxConns
	conConfig.MaxConnIdleTime = time.Minute * 5
	conConfig.MaxConnLifetime = time.Minute * 60

	connectionLogger.Trace("Creating connection config: OK", nil)

	return conConfig
}

func createConnectionPool(ctx context.Context, conType Type, conConfig *pgxpool.Config) *pgxpool.Pool {
	poolName := conType.String()

	connectionLogger.Info("Creating "+poolName+" connection pool...", nil)

	pool, err := pgxpool.NewWithConfig(ctx, conConfig)
	if err != nil {
		connectionLogger.Fatal("Failed to create "+poolName+" connection pool", err.Error(), nil)
	}

	connectionLogger.Info("Ping "+poolName+" connection...", nil)

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err = pool.Ping(pingCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			connectionLogger.Fatal("Failed to ping "+poolName+" DB", "Ping timeout", nil)
		}
		connectionLogger.Fatal("Failed to ping "+poolName+" DB", err.Error(), nil)
	}

	connectionLogger.Info("Ping "+poolName+" connection: OK", nil)

	connectionLogger.Info("Creating "+poolName+" connection pool: OK", nil)

	return pool
}

func (m *Manager) IsConnected() bool {
	return m.isConnected
}

func (m *Manager) Connect(ctx context.Context) {
	if m.isConnected {
		connectionLogger.Panic("DB connection failed", "connection already established", nil)
	}

	primaryConnectionConfig := newConfig(
		config.Secret.PrimaryDatabaseUser,
		config.Secret.PrimaryDatabasePassword,
		config.Secret.PrimaryDatabaseHost,
		config.Secret.PrimaryDatabasePort,
		config.Secret.PrimaryDatabaseName,
	)

	replicaConnectionConfig := newConfig(
		config.Secret.ReplicaDatabaseUser,
		config.Secret.ReplicaDatabasePassword,
		config.Secret.ReplicaDatabaseHost,
		config.Secret.ReplicaDatabasePort,
		config.Secret.ReplicaDatabaseName,
	)

	m.PrimaryPool = createConnectionPool(ctx, Primary, primaryConnectionConfig)
	m.PrimaryConfig = primaryConnectionConfig
	m.ReplicaPool = createConnectionPool(ctx, Replica, replicaConnectionConfig)

	if err := m.postConnection(ctx); err != nil {
		connectionLogger.Fatal("Post-connection failed", err.Error(), nil)
	}

	m.isConnected = true
}

func (m *Manager) Disconnect() error {
	if !m.isConnected {
		return errors.New("connection not established")
	}

	connectionLogger.Info("Closing connection pools...", nil)

	done := make(chan struct{})

	go func() {
		m.PrimaryPool.Close()
		m.ReplicaPool.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second * 10):
		return errors.New("timeout exceeded")
	}

	connectionLogger.Info("Closing connection pools: OK", nil)

	m.isConnected = false

	return nil
}

func (m *Manager) Pool(conType Type) *pgxpool.Pool {
	switch conType {
	case Primary:
		return m.PrimaryPool
	case Replica:
		return m.ReplicaPool
	}

	connectionLogger.Panic("Failed to get connection pool", "Unknown connection type received", nil)

	return nil
}

// Don't forget to release connection
func (m *Manager) GetConnection(ctx context.Context, conType Type) (*pgxpool.Conn, *Error.Status) {
	connection, err := m.Pool(conType).Acquire(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, Error.StatusTimeout
		}

		connectionLogger.Error("Failed to acquire connection from pool", err.Error(), nil)

		return nil, Error.StatusInternalError
	}

	return connection, nil
}

func (m *Manager) postConnection(ctx context.Context) error {
	if config.DB.SkipPostConnection {
		connectionLogger.Warning("Post-connection skipped", nil)
		return nil
	}

	connectionLogger.Info("Post-connection...", nil)

	for _, conType := range []Type{Primary, Replica} {
		connectionLogger.Info("Verifying that all tables exists in "+conType.String()+" DB...", nil)

		if err := m.checkTables(ctx, conType); err != nil {
			return err
		}

		connectionLogger.Info("Verifying that all tables exists in "+conType.String()+" DB: OK", nil)
	}

	connectionLogger.Info("Post-connection: OK", nil)

	return nil
}

func (m *Manager) checkTables(ctx context.Context, conType Type) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	con, err := m.GetConnection(ctx, conType)
	if err != nil {
		return err
	}
	defer con.Release()

	sql := `SELECT t.table_name, EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_name = t.table_name
	) AS table_exists FROM unnest($1::text[]) AS t(table_name);`

	rows, e := con.Query(ctx, sql, Tables)
	if e != nil {
		return e
	}

	type table struct {
		name   string
		exists bool
	}

	tables, e := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*table, error) {
		table := new(table)

		if err := row.Scan(&table.name, &table.exists); err != nil {
			return nil, err
		}

		return table, nil
	})
	if e != nil {
		return e
	}

	nonExistingTables := []string{}
	for _, table := range tables {
		if !table.exists {
			nonExistingTables = append(nonExistingTables, table.name)
		}
	}

	if len(nonExistingTables) != 0 {
		return errors.New("following table(-s) does not exist: " + strings.Join(nonExistingTables, ", "))
	}

	return nil
}
