package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/api/handlers"
	"github.com/dvloznov/spendwise/internal/api/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Insights      *handlers.InsightsHandler
	Transactions  *handlers.TransactionsHandler
	Bills         *handlers.BillsHandler
	Subscriptions *handlers.SubscriptionsHandler
	Summary       *handlers.SummaryHandler
	Export        *handlers.ExportHandler
}

// NewRouter builds the HTTP handler with all routes and middleware applied.
func NewRouter(h Handlers, defaultOwner string, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Insights endpoint
	mux.HandleFunc("/api/getInsights", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.Insights.GetInsights(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Transactions endpoints
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.Transactions.ListTransactions(w, r)
		case http.MethodPost:
			h.Transactions.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			id := trailingID(r, "/api/transactions/")
			if id == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
				return
			}
			h.Transactions.DeleteTransaction(w, r, id)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Bills endpoints
	mux.HandleFunc("/api/bills", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.Bills.ListBills(w, r)
		case http.MethodPost:
			h.Bills.CreateBill(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/bills/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			id := trailingID(r, "/api/bills/")
			if id == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Bill ID is required")
				return
			}
			h.Bills.DeleteBill(w, r, id)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Subscriptions endpoints
	mux.HandleFunc("/api/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.Subscriptions.ListSubscriptions(w, r)
		case http.MethodPost:
			h.Subscriptions.CreateSubscription(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/subscriptions/", func(w http.ResponseWriter, r *http.Request) {
		id := trailingID(r, "/api/subscriptions/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Subscription ID is required")
			return
		}
		switch r.Method {
		case http.MethodPatch:
			h.Subscriptions.UpdateSubscription(w, r, id)
		case http.MethodDelete:
			h.Subscriptions.DeleteSubscription(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Summary endpoints
	mux.HandleFunc("/api/summary/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.Summary.Dashboard(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/summary/analytics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.Summary.Analytics(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Export endpoints
	mux.HandleFunc("/api/export", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.Export.CreateExport(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/export/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.Export.ListExports(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/export/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			id := trailingID(r, "/api/export/jobs/")
			if id == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			h.Export.GetExport(w, r, id)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// RequestID runs before Logger so the request logger carries the ID.
	return middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(
					middleware.Owner(defaultOwner)(mux),
				),
			),
		),
	)
}

func trailingID(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}
