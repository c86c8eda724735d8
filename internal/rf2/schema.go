package rf2

// Column schemas for the RF2 snapshot tables this tool consumes. A file's
// header line must match its schema exactly; every data row must have the
// same field count.

var conceptColumns = []string{
	"id", "effectiveTime", "active", "moduleId", "definitionStatusId",
}

// Shared by Description and TextDefinition files (identical layout).
var descriptionColumns = []string{
	"id", "effectiveTime", "active", "moduleId", "conceptId",
	"languageCode", "typeId", "term", "caseSignificanceId",
}

var relationshipColumns = []string{
	"id", "effectiveTime", "active", "moduleId", "sourceId",
	"destinationId", "relationshipGroup", "typeId",
	"characteristicTypeId", "modifierId",
}

var languageColumns = []string{
	"id", "effectiveTime", "active", "moduleId", "refsetId",
	"referencedComponentId", "acceptabilityId",
}
