// Package pagination implements page fetching and full-collection
// aggregation for the paginated API endpoints.
//
// The API paginates via page/per_page query parameters and reports its
// position in a pager block ({page, per_page, total}). FetchPage validates
// page arguments before any network call; FetchAll walks pages strictly
// sequentially, starting at page 1, until the accumulated result count
// reaches the reported total or the request ceiling is hit.
//
// Pages are never fetched concurrently: the running total read on each page
// must stay self-consistent with the pages fetched so far, and the upstream
// quota leaves little to gain from parallelism.
//
// Example usage:
//
//	fetch := func(ctx context.Context, page, perPage int) (*models.Envelope, error) {
//		params := url.Values{"page": {strconv.Itoa(page)}, "per_page": {strconv.Itoa(perPage)}}
//		return c.Get(ctx, "v1", "league", params)
//	}
//	records, err := pagination.FetchAll(ctx, fetch, 100, 50)
package pagination
