package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/growoff/growoff-api/internal/api"
	"github.com/growoff/growoff-api/internal/config"
	"github.com/growoff/growoff-api/internal/db"
	"github.com/growoff/growoff-api/internal/imagestore"
	"github.com/growoff/growoff-api/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	ctx := context.Background()
	client, err := db.OpenFirestore(ctx, conf.Firestore)
	if err != nil {
		return fmt.Errorf("failed to initialize Firestore -> %w", err)
	}
	defer client.Close()

	images, err := imagestore.New(conf.Images)
	if err != nil {
		return fmt.Errorf("failed to initialize image store -> %w", err)
	}

	s := api.NewServer(conf, client, images)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
