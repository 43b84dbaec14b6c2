package handler

import (
	"pulsehub/internal/app/hub"
	"pulsehub/internal/app/storage"
	"pulsehub/internal/app/store"
	"pulsehub/internal/configs"
)

type AppDeps struct {
	Hub            *hub.Hub
	Config         *configs.AppConfig
	StorageService storage.StorageService
	Users          *store.UserStore
}
