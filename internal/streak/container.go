package streak

import (
	"time"

	"gorm.io/gorm"
)

type StreakContainer struct {
	Handler *Handler
	Service StreakService
}

func NewStreakContainer(db *gorm.DB, notifier Notifier, location *time.Location) *StreakContainer {
	repo := NewRepository(db)
	service := NewService(repo, notifier, location)
	handler := NewHandler(service)

	return &StreakContainer{
		Handler: handler,
		Service: service,
	}
}
