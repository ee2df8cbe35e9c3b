// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one interface with exported function fields, one per
// method. A nil function field falls back to a simple default so tests only
// stub the calls they care about.
//
//	docs := mocks.NewMockDocumentStore()
//	docs.GetFn = func(ctx context.Context, collection, id string) (*store.Document, error) {
//	    return nil, store.ErrNotFound
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
