package main

import (
	"net/http"

	"github.com/gorilla/mux"

	approvePendingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/approve_pending"
	blockSlotHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/cancel_booking"
	cancelPendingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/cancel_pending"
	createBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_available_slots"
	getCustomerProfileHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_customer_profile"
	getDayScheduleHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_day_schedule"
	getScheduleConfigHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_schedule_config"
	getUpcomingBookingsHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_upcoming_bookings"
	getUserBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_user_booking"
	getWorkingDatesHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_working_dates"
	providerEventsHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/provider_events"
	rejectPendingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/reject_pending"
	rescheduleBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/reschedule_booking"
	toggleWorkDayHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/toggle_work_day"
	unblockSlotHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/unblock_slot"
	updateCustomerProfileHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/update_customer_profile"
	updateScheduleConfigHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SMC-SlotBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBooking/internal/config"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	configService "github.com/m04kA/SMC-SlotBooking/internal/service/config"
	"github.com/m04kA/SMC-SlotBooking/internal/websocket"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/metrics"
)

type routerDeps struct {
	engine   *bookings.Engine
	schedule *configService.Service
	hub      *websocket.Hub
	metrics  *metrics.Metrics
	log      *logger.Logger
}

func newRouter(cfg *config.Config, d routerDeps) *mux.Router {
	log := d.log

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(d.engine, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(d.engine, log)
	getWorkingDates := getWorkingDatesHandler.NewHandler(d.engine, log)
	getUserBooking := getUserBookingHandler.NewHandler(d.engine, log)
	cancelBooking := cancelBookingHandler.NewHandler(d.engine, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(d.engine, log)
	getCustomerProfile := getCustomerProfileHandler.NewHandler(d.engine, log)
	updateCustomerProfile := updateCustomerProfileHandler.NewHandler(d.engine, log)

	approvePending := approvePendingHandler.NewHandler(d.engine, log)
	rejectPending := rejectPendingHandler.NewHandler(d.engine, log)
	cancelPending := cancelPendingHandler.NewHandler(d.engine, log)
	blockSlot := blockSlotHandler.NewHandler(d.engine, log)
	unblockSlot := unblockSlotHandler.NewHandler(d.engine, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(d.engine, log)
	getUpcomingBookings := getUpcomingBookingsHandler.NewHandler(d.engine, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(d.schedule, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(d.schedule, log)
	toggleWorkDay := toggleWorkDayHandler.NewHandler(d.schedule, log)
	providerEvents := providerEventsHandler.NewHandler(d.hub, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(d.metrics))
		r.Handle(cfg.Metrics.Path, d.metrics.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Booking.ProviderID))

	// Middleware навешиваются на отдельные маршруты, а не на subrouter:
	// у одного пути бывают методы с разным доступом (GET и PUT /config)
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
	}
	providerOnly := func(h http.HandlerFunc) http.Handler { return middleware.ProviderOnly(h) }

	// ============================================================
	// CUSTOMER ROUTES
	// ============================================================

	api.HandleFunc("/dates", getWorkingDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/config", getScheduleConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/booking", getUserBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/profile", getCustomerProfile.Handle).Methods(http.MethodGet)

	// Изменяющие запросы клиентов ограничены по частоте
	api.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings/{date}/{time}/cancel", limit(cancelBooking.Handle)).Methods(http.MethodPatch)
	api.Handle("/bookings/{date}/{time}/reschedule", limit(rescheduleBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/pending/{id}/cancel", limit(cancelPending.Handle)).Methods(http.MethodPatch)
	api.Handle("/users/{userId}/profile", limit(updateCustomerProfile.Handle)).Methods(http.MethodPut)

	// ============================================================
	// PROVIDER ROUTES
	// ============================================================

	api.Handle("/pending/{id}/approve", providerOnly(approvePending.Handle)).Methods(http.MethodPost)
	api.Handle("/pending/{id}/reject", providerOnly(rejectPending.Handle)).Methods(http.MethodPost)
	api.Handle("/blocked/{date}/{time}", providerOnly(blockSlot.Handle)).Methods(http.MethodPut)
	api.Handle("/blocked/{date}/{time}", providerOnly(unblockSlot.Handle)).Methods(http.MethodDelete)
	api.Handle("/schedule", providerOnly(getDaySchedule.Handle)).Methods(http.MethodGet)
	api.Handle("/schedule/upcoming", providerOnly(getUpcomingBookings.Handle)).Methods(http.MethodGet)
	api.Handle("/config", providerOnly(updateScheduleConfig.Handle)).Methods(http.MethodPut)
	api.Handle("/config/work-days/{day}/toggle", providerOnly(toggleWorkDay.Handle)).Methods(http.MethodPost)
	api.Handle("/provider/events", providerOnly(providerEvents.Handle)).Methods(http.MethodGet)

	return r
}
