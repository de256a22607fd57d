package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/racingleague/racing-league-app/pkg/config"
)

// Clients are the Google clients shared by the server and the tools.
type Clients struct {
	Firestore *firestore.Client
	App       *firebase.App
}

// Connect opens Firestore and the Firebase app with the configured
// credentials. Without credentials the default application credentials are
// used.
func Connect(ctx context.Context, conf config.FirebaseConfig) (*Clients, error) {
	opts := []option.ClientOption{}
	if conf.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(conf.CredentialsJSON)))
	}

	firestoreClient, err := firestore.NewClient(ctx, conf.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client -> %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.ProjectID}, opts...)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to initialize firebase app -> %w", err)
	}
	return &Clients{Firestore: firestoreClient, App: app}, nil
}

func (c *Clients) Close() error {
	return c.Firestore.Close()
}
