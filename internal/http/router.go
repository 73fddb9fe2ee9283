package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"council-backend/internal/handlers"
)

func NewRouter(
	leaseHandler *handlers.LeaseHandler,
	statementHandler *handlers.StatementHandler,
	wasteCustomerHandler *handlers.WasteCustomerHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	invoiceHandler *handlers.InvoiceHandler,
	wastePaymentHandler *handlers.WastePaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Health probes and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Land-rent leases
	api.HandleFunc("/leases", leaseHandler.CreateLease).Methods("POST")
	api.HandleFunc("/leases", leaseHandler.ListLeases).Methods("GET")
	api.HandleFunc("/leases/{id:[0-9]+}", leaseHandler.GetLease).Methods("GET")
	api.HandleFunc("/leases/{id:[0-9]+}/release", leaseHandler.ReleaseLease).Methods("POST")

	// Land-rent statements and payments
	api.HandleFunc("/leases/{id:[0-9]+}/statements", statementHandler.CreateStatement).Methods("POST")
	api.HandleFunc("/leases/{id:[0-9]+}/statements", statementHandler.ListStatements).Methods("GET")
	api.HandleFunc("/leases/{id:[0-9]+}/statements/preview", statementHandler.PreviewStatement).Methods("GET")
	api.HandleFunc("/leases/{id:[0-9]+}/statements/open", statementHandler.GetOpenStatement).Methods("GET")
	api.HandleFunc("/leases/{id:[0-9]+}/payments", statementHandler.RecordPayment).Methods("POST")
	api.HandleFunc("/leases/{id:[0-9]+}/payments", statementHandler.ListPayments).Methods("GET")
	api.HandleFunc("/leases/{id:[0-9]+}/slips", statementHandler.UploadSlip).Methods("POST")
	api.HandleFunc("/slips", statementHandler.FetchSlip).Methods("GET")
	api.HandleFunc("/statements/{id:[0-9]+}", statementHandler.GetStatement).Methods("GET")

	// Waste customers and subscriptions
	api.HandleFunc("/waste/customers", wasteCustomerHandler.CreateCustomer).Methods("POST")
	api.HandleFunc("/waste/customers", wasteCustomerHandler.ListCustomers).Methods("GET")
	api.HandleFunc("/waste/customers/{id:[0-9]+}", wasteCustomerHandler.GetCustomer).Methods("GET")
	api.HandleFunc("/waste/customers/{id:[0-9]+}", wasteCustomerHandler.UpdateCustomer).Methods("PUT")
	api.HandleFunc("/waste/customers/{id:[0-9]+}/balance", wasteCustomerHandler.GetBalance).Methods("GET")
	api.HandleFunc("/waste/customers/{id:[0-9]+}/subscriptions", subscriptionHandler.ListByCustomer).Methods("GET")
	api.HandleFunc("/waste/customers/{id:[0-9]+}/payments", wastePaymentHandler.ListByCustomer).Methods("GET")
	api.HandleFunc("/waste/subscriptions", subscriptionHandler.CreateSubscription).Methods("POST")
	api.HandleFunc("/waste/subscriptions/{id:[0-9]+}", subscriptionHandler.GetSubscription).Methods("GET")
	api.HandleFunc("/waste/subscriptions/{id:[0-9]+}/status", subscriptionHandler.UpdateStatus).Methods("PATCH")

	// Waste invoices and payments
	api.HandleFunc("/waste/invoices/generate", invoiceHandler.GenerateInvoices).Methods("POST")
	api.HandleFunc("/waste/invoices/mark-overdue", invoiceHandler.MarkOverdue).Methods("POST")
	api.HandleFunc("/waste/invoices", invoiceHandler.ListInvoices).Methods("GET")
	api.HandleFunc("/waste/invoices/{id:[0-9]+}", invoiceHandler.GetInvoice).Methods("GET")
	api.HandleFunc("/waste/invoices/{id:[0-9]+}/allocations", invoiceHandler.ListAllocations).Methods("GET")
	api.HandleFunc("/waste/payments", wastePaymentHandler.RecordPayment).Methods("POST")
	api.HandleFunc("/waste/payments/{id:[0-9]+}", wastePaymentHandler.GetPayment).Methods("GET")

	// Dashboard
	api.HandleFunc("/dashboard", dashboardHandler.Summary).Methods("GET")

	return r
}
