// Package colbertdb is a Go client for a ColBERT document-search store.
//
// A Client is a session: New performs the connect handshake and keeps the
// returned access token for every later request. Collection management
// methods return *Collection handles, which delegate back to the Client.
//
//	client, err := colbertdb.New(ctx, "http://localhost:8080",
//	    colbertdb.WithAPIKey(os.Getenv("COLBERTDB_API_KEY")),
//	)
//	col, err := client.CreateCollection(ctx, "docs", []colbertdb.Document{
//	    {Content: "hello", Metadata: map[string]any{"source": "greeting.txt"}},
//	})
//	res, err := col.Search(ctx, "hello", colbertdb.WithK(3))
//	_, err = col.DeleteDocuments(ctx, res.DocumentIDs())
//	_, err = col.Delete(ctx)
//
// Every request has a fixed 60 second timeout and is never retried.
// Failures are classified by the sentinels ErrValidation, ErrAuthentication,
// ErrNotFound and ErrTransport.
package colbertdb
