package remote

import "github.com/santhosh-tekuri/jsonschema/v5"

// Response schemas, validated before unmarshaling into typed structs.
// A 2xx body that fails its schema surfaces as ErrMalformedResponse instead
// of propagating bad data. Schemas pin types and required fields only;
// unknown extra fields are allowed so server additions don't break clients.

var (
	loginSchema = jsonschema.MustCompileString("login.json", `{
		"type": "object",
		"required": ["access_token"],
		"properties": {
			"access_token": {"type": "string", "minLength": 1},
			"token_type": {"type": "string"}
		}
	}`)

	userSchema = jsonschema.MustCompileString("user.json", `{
		"type": "object",
		"required": ["id", "email"],
		"properties": {
			"id": {"type": "integer"},
			"email": {"type": "string"},
			"username": {"type": "string"},
			"is_active": {"type": "boolean"},
			"created_at": {"type": "string"}
		}
	}`)

	bookSchema = jsonschema.MustCompileString("book.json", bookSchemaSrc)

	booksListSchema = jsonschema.MustCompileString("books_list.json", `{
		"type": "object",
		"required": ["books", "total"],
		"properties": {
			"books": {"type": "array", "items": `+bookSchemaSrc+`},
			"total": {"type": "integer"},
			"page": {"type": "integer"},
			"page_size": {"type": "integer"}
		}
	}`)

	statusSchema = jsonschema.MustCompileString("status.json", `{
		"type": "object",
		"required": ["book_id", "status"],
		"properties": {
			"book_id": {"type": "integer"},
			"status": {"enum": ["pending", "processing", "completed", "failed"]},
			"total_pages": {"type": "integer"},
			"error_message": {"type": ["string", "null"]},
			"progress_message": {"type": ["string", "null"]}
		}
	}`)

	statsSchema = jsonschema.MustCompileString("stats.json", `{
		"type": "object",
		"required": ["book_id", "total_pages"],
		"properties": {
			"book_id": {"type": "integer"},
			"total_pages": {"type": "integer"},
			"total_words": {"type": "integer"},
			"total_chars": {"type": "integer"},
			"estimated_reading_time": {"type": "string"}
		}
	}`)

	pagesListSchema = jsonschema.MustCompileString("pages_list.json", `{
		"type": "object",
		"required": ["pages", "total_pages"],
		"properties": {
			"pages": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["page_number"],
					"properties": {
						"page_number": {"type": "integer"},
						"word_count": {"type": "integer"},
						"char_count": {"type": "integer"}
					}
				}
			},
			"total_pages": {"type": "integer"},
			"current_page": {"type": "integer"},
			"page_size": {"type": "integer"},
			"book_id": {"type": "integer"}
		}
	}`)

	pageResponseSchema = jsonschema.MustCompileString("page_response.json", `{
		"type": "object",
		"required": ["page", "has_previous", "has_next", "total_pages"],
		"properties": {
			"page": {
				"type": "object",
				"required": ["page_number", "content"],
				"properties": {
					"page_number": {"type": "integer", "minimum": 1},
					"content": {"type": "string"},
					"word_count": {"type": "integer"},
					"char_count": {"type": "integer"},
					"book_id": {"type": "integer"}
				}
			},
			"has_previous": {"type": "boolean"},
			"has_next": {"type": "boolean"},
			"previous_page": {"type": ["integer", "null"]},
			"next_page": {"type": ["integer", "null"]},
			"total_pages": {"type": "integer"}
		}
	}`)
)

const bookSchemaSrc = `{
	"type": "object",
	"required": ["id", "title"],
	"properties": {
		"id": {"type": "integer"},
		"title": {"type": "string"},
		"author": {"type": "string"},
		"file_name": {"type": "string"},
		"file_size": {"type": "integer"},
		"file_type": {"type": "string"},
		"user_id": {"type": "integer"},
		"uploaded_at": {"type": "string"}
	}
}`
