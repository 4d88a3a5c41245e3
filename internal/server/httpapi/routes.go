package httpapi

import "net/http"

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.healthz)

	mux.HandleFunc("POST /api/register", s.register)
	mux.HandleFunc("POST /api/login", s.login)
	mux.HandleFunc("POST /api/refresh", s.refresh)
	mux.HandleFunc("POST /api/logout", s.logout)

	mux.Handle("GET /api/me", s.authenticated(s.me))

	mux.Handle("GET /api/transactions", s.authenticated(s.listTransactions))
	mux.Handle("POST /api/transactions", s.authenticated(s.createTransaction))
	mux.Handle("GET /api/transactions/{id}", s.authenticated(s.getTransaction))
	mux.Handle("PUT /api/transactions/{id}", s.authenticated(s.updateTransaction))
	mux.Handle("DELETE /api/transactions/{id}", s.authenticated(s.deleteTransaction))

	mux.Handle("GET /api/summary/detailed", s.authenticated(s.detailedSummary))
	mux.Handle("GET /api/summary/series", s.authenticated(s.seriesOverview))
	mux.Handle("GET /api/summary/{granularity}", s.authenticated(s.series))

	mux.Handle("POST /api/export", s.authenticated(s.export))

	return chain(mux, RequestID, s.accessLog, s.recovery)
}

// chain wraps h so the first middleware is outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
