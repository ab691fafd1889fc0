package queries

// CountResponse is the body of GET /1/queries/count/:prefix.
type CountResponse struct {
	Count int `json:"count"`
}

// TopQueryEntry is one ranked query in a TopQueriesResponse.
type TopQueryEntry struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// TopQueriesResponse is the body of GET /1/queries/popular/:prefix.
type TopQueriesResponse struct {
	Queries []TopQueryEntry `json:"queries"`
}
