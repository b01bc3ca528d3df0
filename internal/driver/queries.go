package driver

const (
	SaveFolderQuery = `
		MERGE (f:Folder {folder_id: $folder_id})
		SET f.path = $path,
			f.label = $label,
			f.depth = $depth,
			f.parent_id = $parent_id,
			f.aliases = $aliases,
			f.embedding = $embedding,
			f.item_count = $item_count,
			f.is_seed = $is_seed,
			f.owner_id = $owner_id,
			f.created_at = $created_at,
			f.updated_at = $updated_at
		RETURN f.folder_id AS folder_id
	`

	GetFolderByIDQuery = `
		MATCH (f:Folder {folder_id: $folder_id})
		RETURN f.folder_id AS folder_id, f.path AS path, f.label AS label,
			f.depth AS depth, f.parent_id AS parent_id, f.aliases AS aliases,
			f.embedding AS embedding, f.item_count AS item_count, f.is_seed AS is_seed
	`

	GetFolderByPathQuery = `
		MATCH (f:Folder {path: $path})
		RETURN f.folder_id AS folder_id, f.path AS path, f.label AS label,
			f.depth AS depth, f.parent_id AS parent_id, f.aliases AS aliases,
			f.embedding AS embedding, f.item_count AS item_count, f.is_seed AS is_seed
	`

	GetFoldersByDepthQuery = `
		MATCH (f:Folder {depth: $depth})
		RETURN f.folder_id AS folder_id, f.path AS path, f.label AS label,
			f.depth AS depth, f.parent_id AS parent_id, f.aliases AS aliases,
			f.embedding AS embedding, f.item_count AS item_count, f.is_seed AS is_seed
		ORDER BY f.created_at
	`

	GetAllFoldersQuery = `
		MATCH (f:Folder)
		RETURN f.folder_id AS folder_id, f.path AS path, f.label AS label,
			f.depth AS depth, f.parent_id AS parent_id, f.aliases AS aliases,
			f.embedding AS embedding, f.item_count AS item_count, f.is_seed AS is_seed
		ORDER BY f.created_at
	`

	GetChildrenQuery = `
		MATCH (f:Folder {parent_id: $parent_id})
		RETURN f.folder_id AS folder_id, f.path AS path, f.label AS label,
			f.depth AS depth, f.parent_id AS parent_id, f.aliases AS aliases,
			f.embedding AS embedding, f.item_count AS item_count, f.is_seed AS is_seed
		ORDER BY f.created_at
	`

	DeleteFolderQuery = `
		MATCH (f:Folder {folder_id: $folder_id})
		DETACH DELETE f
		RETURN count(f) AS deleted
	`

	IncrementItemCountQuery = `
		MATCH (f:Folder {folder_id: $folder_id})
		SET f.item_count = coalesce(f.item_count, 0) + 1,
			f.updated_at = $updated_at
		RETURN f.item_count AS item_count
	`

	AssociateItemQuery = `
		MERGE (i:Item {item_id: $item_id})
		WITH i
		OPTIONAL MATCH (i)-[old:FILED_IN]->(:Folder)
		DELETE old
		WITH i
		MATCH (f:Folder {folder_id: $folder_id})
		MERGE (i)-[r:FILED_IN]->(f)
		SET r.associated_at = $associated_at,
			r.metadata = $metadata
		RETURN i.item_id AS item_id
	`

	GetFolderForItemQuery = `
		MATCH (:Item {item_id: $item_id})-[:FILED_IN]->(f:Folder)
		RETURN f.folder_id AS folder_id
	`

	GetItemsInFolderQuery = `
		MATCH (i:Item)-[:FILED_IN]->(:Folder {folder_id: $folder_id})
		RETURN i.item_id AS item_id
		SKIP $offset LIMIT $limit
	`

	SaveClassificationQuery = `
		CREATE (c:Classification {
			item_id: $item_id,
			final_path: $final_path,
			confidence: $confidence,
			record: $record,
			processed_at: $processed_at
		})
		RETURN c.item_id AS item_id
	`

	GetClassificationHistoryQuery = `
		MATCH (c:Classification)
		RETURN c.record AS record
		ORDER BY c.processed_at DESC
		LIMIT $limit
	`

	SaveFolderEmbeddingQuery = `
		MATCH (f:Folder {folder_id: $folder_id})
		SET f.embedding = $embedding
		RETURN f.folder_id AS folder_id
	`

	ClearFolderEmbeddingQuery = `
		MATCH (f:Folder {folder_id: $folder_id})
		WHERE f.embedding IS NOT NULL
		SET f.embedding = NULL
		RETURN f.folder_id AS folder_id
	`

	GetFolderVectorsQuery = `
		MATCH (f:Folder)
		WHERE ($depth IS NULL OR f.depth = $depth)
		  AND ($parent_id IS NULL OR f.parent_id = $parent_id)
		RETURN f.folder_id AS folder_id, f.path AS path, f.depth AS depth,
			f.parent_id AS parent_id, f.embedding AS embedding
		ORDER BY f.created_at
	`
)
