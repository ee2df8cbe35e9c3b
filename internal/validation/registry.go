package validation

// EntitySchemas holds the create and update request schemas of one resource.
type EntitySchemas struct {
	Create RequestSchema
	Update RequestSchema
}

func idParams(message string) Schema {
	return Schema{Fields: []Field{{
		Name:     "id",
		Kind:     KindString,
		Required: true,
		Messages: map[string]string{KeyRequired: message},
	}}}
}

// Users validates user requests.
var Users = EntitySchemas{
	Create: RequestSchema{
		Body: Schema{Fields: []Field{
			{
				Name:     "name",
				Kind:     KindString,
				Required: true,
				Rules:    "min=2,max=100",
				Messages: map[string]string{
					KeyRequired: "Name is required",
					KeyEmpty:    "Name cannot be empty",
				},
			},
			{
				Name:     "email",
				Kind:     KindString,
				Required: true,
				Rules:    "email",
				Messages: map[string]string{
					KeyRequired: "Email is required",
					"email":     "Email must be valid",
				},
			},
		}},
	},
	Update: RequestSchema{
		Params: idParams("User ID is required"),
		Body: Schema{
			Fields: []Field{
				{Name: "name", Kind: KindString},
				{Name: "email", Kind: KindString, Rules: "email"},
			},
			MinFields: 1,
		},
	},
}

// Books validates book requests.
var Books = EntitySchemas{
	Create: RequestSchema{
		Body: Schema{Fields: []Field{
			{
				Name:     "title",
				Kind:     KindString,
				Required: true,
				Rules:    "min=1",
				Messages: map[string]string{
					KeyRequired: "Title is required",
					KeyEmpty:    "Title cannot be empty",
				},
			},
			{
				Name:     "author",
				Kind:     KindString,
				Required: true,
				Rules:    "min=1",
				Messages: map[string]string{
					KeyRequired: "Author is required",
					KeyEmpty:    "Author cannot be empty",
				},
			},
			{
				Name:     "copiesAvailable",
				Kind:     KindInteger,
				Required: true,
				Rules:    "gte=0",
				Messages: map[string]string{
					KeyRequired: "Copies available is required",
					KeyType:     "Copies available must be a number",
				},
			},
		}},
	},
	Update: RequestSchema{
		Params: idParams("Book ID is required"),
		Body: Schema{
			Fields: []Field{
				{Name: "title", Kind: KindString, Rules: "min=1"},
				{Name: "author", Kind: KindString, Rules: "min=1"},
				{Name: "copiesAvailable", Kind: KindInteger, Rules: "gte=0"},
			},
			MinFields: 1,
		},
	},
}

// Borrows validates borrow record requests.
var Borrows = EntitySchemas{
	Create: RequestSchema{
		Body: Schema{Fields: []Field{
			{
				Name:     "userId",
				Kind:     KindString,
				Required: true,
				Messages: map[string]string{KeyRequired: "User ID is required"},
			},
			{
				Name:     "bookId",
				Kind:     KindString,
				Required: true,
				Messages: map[string]string{KeyRequired: "Book ID is required"},
			},
			{Name: "borrowedAt", Kind: KindString, Rules: "isodate"},
			{
				Name:     "dueDate",
				Kind:     KindString,
				Required: true,
				Rules:    "isodate",
				Messages: map[string]string{KeyRequired: "Due date is required"},
			},
		}},
	},
	Update: RequestSchema{
		Params: idParams("Borrow ID is required"),
		Body: Schema{
			Fields: []Field{
				{Name: "returnedAt", Kind: KindString, Nullable: true, Rules: "isodate"},
				{Name: "dueDate", Kind: KindString, Rules: "isodate"},
				{Name: "status", Kind: KindString, Rules: "oneof=borrowed returned"},
			},
			MinFields: 1,
		},
	},
}
