package service

import (
	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/remote"
	"github.com/MKhiriev/vetfinder/internal/securestore"
	"github.com/MKhiriev/vetfinder/internal/validators"
)

type Services struct {
	AuthService      AuthService
	ProfileService   ProfileService
	FavoritesService FavoritesService
	ReconcileJob     ReconcileJob
	Gateway          remote.Gateway
}

func NewServices(store securestore.Store, gateway remote.Gateway, authBackend remote.AuthBackend, log *logger.Logger) *Services {
	authSvc := NewAuthService(authBackend, store, log.GetChildLogger())
	profileSvc := NewProfileService(store, validators.NewProfileValidator(), log.GetChildLogger())
	favoritesSvc := NewFavoritesService(gateway, authSvc, log.GetChildLogger())

	return &Services{
		AuthService:      authSvc,
		ProfileService:   profileSvc,
		FavoritesService: favoritesSvc,
		ReconcileJob:     NewReconcileJob(favoritesSvc, log.GetChildLogger()),
		Gateway:          gateway,
	}
}
