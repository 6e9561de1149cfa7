// Package hudu provides a Go client for the Hudu documentation platform
// API v1.
//
// Two layers are exposed. Client is the high-level interface: one method per
// resource operation, typed models, automatic pagination, and a Result
// return that forces callers to handle both the success and the failure
// branch. API is the low-level interface underneath it: raw JSON bodies and
// conventional (value, error) returns with a typed error taxonomy.
//
// # Rate Limiting
//
// Hudu enforces 300 API requests per minute. The client tracks its own
// calls in a sliding 60-second window and delays requests that would exceed
// the quota, so a well-behaved program never sees a 429. The limiter is
// owned by the client instance; to share one quota across several clients,
// construct a limiter once and pass it to each ClientConfig.
//
// # Retry Logic
//
// Automatic exponential backoff retry for:
//   - 5xx server errors
//   - 429 rate limit errors (respects Retry-After header)
//   - transport failures
//
// 401, 404 and other 4xx responses are permanent and surface immediately.
//
// # Example Usage
//
//	client, err := hudu.New("https://hudu.example.com", "your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := client.GetCompanies(context.Background(), nil)
//	if res.IsFailure() {
//	    log.Fatal(res.UnwrapErr())
//	}
//
//	for _, company := range res.Unwrap() {
//	    fmt.Printf("%d: %s\n", company.ID, company.Name)
//	}
//
// # Configuration
//
// Credentials come from constructor arguments or from the HUDU_BASE_URL and
// HUDU_API_KEY environment variables via NewFromEnv. Construction fails
// when either is missing.
package hudu
