package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/invoice-manager/pkg/config"
)

// Client conexión a MongoDB creada una sola vez en main e inyectada en los adaptadores.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoConfig
}

// Connect abre la conexión usando la URI de la configuración y verifica con Ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(25)

	cli, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("conectar MongoDB: %w", err)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return &Client{client: cli, db: cli.Database(cfg.Database), cfg: cfg}, nil
}

// Database devuelve la base de datos configurada.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// EnsureIndexes crea los índices usados por el listado (orden por createdAt).
func (c *Client) EnsureIndexes(ctx context.Context) error {
	coll := c.db.Collection(c.cfg.InvoicesCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "fileId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("crear índices: %w", err)
	}
	return nil
}

// Ping verifica que el servidor siga respondiendo.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Disconnect cierra la conexión (llamar al apagar el servidor).
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
