package utils

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
)

// SearchIndex is the Meilisearch index holding dataset documents.
const SearchIndex = "datasets"

func DatasetToDocument(dataset *entity.Dataset) map[string]interface{} {
	return map[string]interface{}{
		"id":          dataset.ID.String(),
		"name":        dataset.Name,
		"owner":       dataset.Owner,
		"description": dataset.Description,
		"tags":        dataset.TagValues(),
	}
}

// IndexDataset upserts the dataset's search document. A nil client means
// search is disabled and the call is a no-op.
func IndexDataset(client *meilisearch.Client, dataset *entity.Dataset) error {
	if client == nil {
		return nil
	}
	_, err := client.Index(SearchIndex).AddDocuments([]map[string]interface{}{DatasetToDocument(dataset)})
	if err != nil {
		return fmt.Errorf("failed to index dataset: %w", err)
	}
	return nil
}

// RemoveDataset drops a dataset's search document after a soft delete.
func RemoveDataset(client *meilisearch.Client, id uuid.UUID) error {
	if client == nil {
		return nil
	}
	_, err := client.Index(SearchIndex).DeleteDocument(id.String())
	if err != nil {
		return fmt.Errorf("failed to remove dataset from index: %w", err)
	}
	return nil
}
