package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"github.com/growoff/growoff-api/internal/config"
)

// OpenFirestore connects to the project's Firestore database. When no
// credentials file is configured the default credential chain applies,
// which also covers FIRESTORE_EMULATOR_HOST for local development.
func OpenFirestore(ctx context.Context, conf *config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if conf.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp -> %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore -> %w", err)
	}

	return client, nil
}
