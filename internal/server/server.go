package server

// Server combines the HTTP servers of the individual resources.
type Server struct {
	HealthServer
	CatalogServer
	QuoteServer
	HandoffServer
}

func NewServer(
	healthServer HealthServer,
	catalogServer CatalogServer,
	quoteServer QuoteServer,
	handoffServer HandoffServer,
) Server {
	return Server{
		HealthServer:  healthServer,
		CatalogServer: catalogServer,
		QuoteServer:   quoteServer,
		HandoffServer: handoffServer,
	}
}
