// handlers/handlers.go - Handler wiring
package handlers

import (
	"pickleball/database"
	"pickleball/services"
)

var (
	groupService   *services.GroupService
	sessionService *services.SessionService
	matchService   *services.MatchService
	sessionFeed    *services.SessionFeed
)

// InitHandlers builds the service layer. Call after database.InitDB.
func InitHandlers() {
	db := database.GetDB()
	groupService = services.NewGroupService(db)
	sessionService = services.NewSessionService(db)
	matchService = services.NewMatchService(db)
	sessionFeed = services.NewSessionFeed()
}
