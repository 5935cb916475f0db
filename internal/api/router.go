package api

import (
	"github.com/gorilla/mux"

	"github.com/rappy1999/workhours/internal/api/recovery"
	"github.com/rappy1999/workhours/internal/auth"
	"github.com/rappy1999/workhours/internal/services"
	"github.com/rappy1999/workhours/internal/store"
	"github.com/rappy1999/workhours/internal/timeclock"
)

// NewRouter wires the full REST surface over the given store. Everything
// under /api/users/{userId} requires a bearer token resolving to that user;
// user creation and health stay open.
func NewRouter(st store.Store, authorizer auth.Authorizer, resolver timeclock.Resolver, isHealthy func() bool) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	userSvc := services.NewUserService(st)
	entrySvc := services.NewEntryService(st)
	statsSvc := services.NewStatsService(st, resolver)

	userHandler := NewUserHandler(userSvc)
	entryHandler := NewEntryHandler(entrySvc)
	statsHandler := NewStatsHandler(statsSvc)
	healthHandler := NewHealthHandler(isHealthy)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/users", userHandler.CreateUser).Methods("POST")

	scoped := router.PathPrefix("/api/users/{userId}").Subrouter()
	scoped.Use(RequireActor(authorizer))

	scoped.HandleFunc("", userHandler.GetUser).Methods("GET")

	scoped.HandleFunc("/entries", entryHandler.CreateEntry).Methods("POST")
	scoped.HandleFunc("/entries", entryHandler.ListEntries).Methods("GET")
	scoped.HandleFunc("/entries/range", entryHandler.RangeSummary).Methods("GET")
	scoped.HandleFunc("/entries/date/{date}", entryHandler.EntriesForDate).Methods("GET")
	scoped.HandleFunc("/entries/{entryId}", entryHandler.GetEntry).Methods("GET")
	scoped.HandleFunc("/entries/{entryId}", entryHandler.UpdateEntry).Methods("PUT")
	scoped.HandleFunc("/entries/{entryId}", entryHandler.DeleteEntry).Methods("DELETE")

	scoped.HandleFunc("/stats", statsHandler.Stats).Methods("GET")
	scoped.HandleFunc("/payperiods", statsHandler.PayPeriods).Methods("GET")

	return router
}
