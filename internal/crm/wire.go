package crm

// Wire types for the AmoCRM/Kommo v4 API. The payload is a single explicit
// contract built from injected field-id configuration; there is no
// exploratory field fallback.

type customFieldValue struct {
	Value string `json:"value"`
}

type customField struct {
	FieldID int64              `json:"field_id"`
	Values  []customFieldValue `json:"values"`
}

type wireTag struct {
	Name string `json:"name"`
}

type wireContact struct {
	Name               string        `json:"name"`
	CustomFieldsValues []customField `json:"custom_fields_values,omitempty"`
}

type wireLeadEmbedded struct {
	Tags []wireTag `json:"tags,omitempty"`
}

type wireLead struct {
	Name               string            `json:"name"`
	Price              int64             `json:"price"`
	PipelineID         *int64            `json:"pipeline_id,omitempty"`
	StatusID           *int64            `json:"status_id,omitempty"`
	CustomFieldsValues []customField     `json:"custom_fields_values,omitempty"`
	Embedded           *wireLeadEmbedded `json:"_embedded,omitempty"`
}

type wireLink struct {
	ToEntityID   int64  `json:"to_entity_id"`
	ToEntityType string `json:"to_entity_type"`
}

type idRecord struct {
	ID int64 `json:"id"`
}

type contactsEnvelope struct {
	Embedded struct {
		Contacts []idRecord `json:"contacts"`
	} `json:"_embedded"`
}

type leadsEnvelope struct {
	Embedded struct {
		Leads []idRecord `json:"leads"`
	} `json:"_embedded"`
}

type wireStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type wirePipeline struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Embedded struct {
		Statuses []wireStatus `json:"statuses"`
	} `json:"_embedded"`
}

type pipelinesEnvelope struct {
	Embedded struct {
		Pipelines []wirePipeline `json:"pipelines"`
	} `json:"_embedded"`
}

// PipelineStatus is one stage of a sales pipeline.
type PipelineStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Pipeline is a sales pipeline with its stages, as exposed to the admin
// surface for pipeline/stage selection.
type Pipeline struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Statuses []PipelineStatus `json:"statuses"`
}
