// Package httputil provides the HTTP plumbing used to fetch remote catalogs.
//
// # Overview
//
//   - [Client]: GET requests with status classification and observability hooks
//   - [Retry]: automatic retry with exponential backoff
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried. [Client] wraps
// network failures and 5xx responses; 4xx responses fail immediately:
//
//	var body []byte
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    var err error
//	    body, err = client.Get(ctx, url)
//	    return err
//	})
package httputil
