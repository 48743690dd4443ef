package fabric

// ItemTypeSQLEndpoint is the type the generic items listing reports
// for a lakehouse's SQL analytics endpoint.
const ItemTypeSQLEndpoint = "SQLEndpoint"

// Item is a workspace resource as returned by the Fabric listing APIs.
// Type is only populated by the generic items listing.
type Item struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type,omitempty"`
}

// listResponse is the envelope every Fabric listing API wraps its
// results in.
type listResponse struct {
	Value []Item `json:"value"`
}

// TriggerResponse is the raw outcome of a refreshMetadata POST. The
// orchestrator classifies it; the client only transports it.
type TriggerResponse struct {
	StatusCode int
	Location   string
	Body       string
}
