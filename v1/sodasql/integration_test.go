//go:build integration

package sodasql

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/docstore/v1/document"
	"github.com/Aleph-Alpha/docstore/v1/provider"
	"github.com/Aleph-Alpha/docstore/v1/query"
)

const grantSODA = `ALTER SESSION SET CONTAINER = FREEPDB1;
GRANT SODA_APP TO app;
`

type oracleContainer struct {
	testcontainers.Container
	Config Config
}

func setupOracleContainer(ctx context.Context) (*oracleContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image: "gvenzl/oracle-free:23-slim-faststart",
		Env: map[string]string{
			"ORACLE_PASSWORD":   "syspass",
			"APP_USER":          "app",
			"APP_USER_PASSWORD": "apppass",
		},
		ExposedPorts: []string{"1521/tcp"},
		Files: []testcontainers.ContainerFile{{
			Reader:            strings.NewReader(grantSODA),
			ContainerFilePath: "/container-entrypoint-initdb.d/01-soda.sql",
			FileMode:          0o644,
		}},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"1521/tcp": []nat.PortBinding{{HostPort: fmt.Sprintf("%d", port)}},
			}
		},
		WaitingFor: wait.ForLog("DATABASE IS READY TO USE!").WithStartupTimeout(5 * time.Minute),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start oracle container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, "1521")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &oracleContainer{
		Container: c,
		Config: Config{
			Host:        host,
			Port:        mapped.Int(),
			ServiceName: "FREEPDB1",
			Username:    "app",
			Password:    "apppass",
		},
	}, nil
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

type incident struct {
	Title    string `json:"title"`
	Priority int    `json:"priority"`
}

func (incident) CollectionName() string { return "incidents" }

func TestOracleIntegration(t *testing.T) {
	ctx := context.Background()

	oc, err := setupOracleContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = oc.Terminate(ctx) })

	var p provider.Provider
	app := fxtest.New(t,
		FXModule,
		fx.Supply(oc.Config),
		fx.Populate(&p),
	)
	app.RequireStart()
	defer app.RequireStop()

	store := provider.NewStore[incident](p)
	require.NoError(t, store.EnsureCollection(ctx))
	require.NoError(t, store.EnsureCollection(ctx))

	created, err := store.Create(ctx, incident{Title: "disk full", Priority: 2})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "disk full", created.Value.Title)

	updated, err := store.Update(ctx, created.ID, incident{Title: "disk full", Priority: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Value.Priority)
	assert.NotEqual(t, created.ETag, updated.ETag)

	_, err = store.Create(ctx, incident{Title: "cpu hot", Priority: 1})
	require.NoError(t, err)

	q := query.New().With(query.Int("priority", 3, query.GreaterThan))
	found, err := store.Filter(ctx, q, document.NewPage())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	all, err := store.List(ctx, &document.Page{PageNumber: 1, ItemsPerPage: 10, OrderingPath: "priority"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "cpu hot", all[0].Value.Title)

	retrieved, err := store.Retrieve(ctx, created.ID)
	require.NoError(t, err)
	raw, _ := json.Marshal(retrieved.Value)
	assert.JSONEq(t, `{"title":"disk full","priority":4}`, string(raw))

	require.NoError(t, store.Delete(ctx, created.ID))
	assert.True(t, document.IsNotFound(store.Delete(ctx, created.ID)))
	_, err = store.Retrieve(ctx, created.ID)
	assert.True(t, document.IsNotFound(err))
}
