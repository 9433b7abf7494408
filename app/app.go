package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookshelf-app/bookshelf-service/config"
	"github.com/bookshelf-app/bookshelf-service/internal/handler"
	"github.com/bookshelf-app/bookshelf-service/internal/repository"
	"github.com/bookshelf-app/bookshelf-service/internal/server"
	"github.com/bookshelf-app/bookshelf-service/internal/service"
	"github.com/bookshelf-app/bookshelf-service/internal/storage"
	"github.com/bookshelf-app/bookshelf-service/pkg/auth"
	"github.com/bookshelf-app/bookshelf-service/pkg/kafka"
	"github.com/bookshelf-app/bookshelf-service/pkg/logger"
	"go.uber.org/zap"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "bookshelf")

	db, err := repository.NewMongoDB(context.Background(), &cfg.Mongo)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	uploader, err := storage.NewUploader(context.Background(), cfg.S3, log)
	if err != nil {
		log.Fatal("storage init", zap.Error(err))
	}

	tokens := auth.NewManager(cfg.JWT)

	catalogSvc := service.NewCatalog(repo, uploader, log)
	userSvc := service.NewUser(repo, tokens, log)
	statusSvc := service.NewStatus(repo, log)

	var events handler.Publisher = handler.NopPublisher{}
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close()
		events = handler.NewPublisher(producer, kafka.EventsTopic, log)
	}

	h := handler.New(catalogSvc, userSvc, statusSvc, events, tokens, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = db.Client().Disconnect(closeCtx); err != nil {
		log.Error("mongo disconnect", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
