// Package mocks holds gomock mocks for the repository's interfaces.
package mocks

//go:generate mockgen -destination=mock_catalog.go -package=mocks bookworm-search/internal/ol Catalog
//go:generate mockgen -destination=mock_result_store.go -package=mocks bookworm-search/internal/store ResultStore
//go:generate mockgen -destination=mock_message_writer.go -package=mocks bookworm-search/internal/kafka MessageWriter
//go:generate mockgen -destination=mock_catalog_client.go -package=mocks bookworm-search/internal/catalog Searcher,EventPublisher
