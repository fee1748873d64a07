package querybuilder

// InsertRows holds one slice of values per inserted row
type InsertRows [][]interface{}

// UpdateData maps column names to their new values
type UpdateData map[string]interface{}
