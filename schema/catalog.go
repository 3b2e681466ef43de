package schema

import (
	"fmt"
	"strings"
)

// Catalog returns the built-in HR-style table set, already listed in
// foreign-key topological order: every referenced table precedes its
// dependents (EMPLOYEES.MANAGER_ID is a self-reference and exempt).
func Catalog(owner string) []Table {
	return []Table{
		{
			Name:  "LOCATIONS",
			Owner: owner,
			Columns: []Column{
				{Name: "LOCATION_ID", Type: "NUMBER(4)", NotNull: true},
				{Name: "STREET_ADDRESS", Type: "VARCHAR2(40)"},
				{Name: "STREET_ADDRESS_JP", Type: "VARCHAR2(40)"},
				{Name: "POSTAL_CODE", Type: "VARCHAR2(12)"},
				{Name: "CITY", Type: "VARCHAR2(30)", NotNull: true},
				{Name: "CITY_JP", Type: "VARCHAR2(30)"},
				{Name: "STATE_PROVINCE", Type: "VARCHAR2(25)"},
				{Name: "STATE_PROVINCE_JP", Type: "VARCHAR2(25)"},
				{Name: "COUNTRY", Type: "VARCHAR2(20)"},
			},
			PrimaryKey: []string{"LOCATION_ID"},
		},
		{
			Name:  "DEPARTMENTS",
			Owner: owner,
			Columns: []Column{
				{Name: "DEPARTMENT_ID", Type: "NUMBER(4)", NotNull: true},
				{Name: "DEPARTMENT_NAME", Type: "VARCHAR2(30)", NotNull: true},
				{Name: "DEPARTMENT_NAME_JP", Type: "VARCHAR2(30)"},
				{Name: "LOCATION_ID", Type: "NUMBER(4)"},
				{Name: "DESCRIPTION_JP", Type: "CLOB"},
			},
			PrimaryKey: []string{"DEPARTMENT_ID"},
			ForeignKeys: []ForeignKey{
				{Name: "DEPT_LOC_FK", Column: "LOCATION_ID", ReferencesTable: "LOCATIONS", ReferencesColumn: "LOCATION_ID"},
			},
		},
		{
			Name:  "JOBS",
			Owner: owner,
			Columns: []Column{
				{Name: "JOB_ID", Type: "NUMBER(6)", NotNull: true},
				{Name: "JOB_TITLE", Type: "VARCHAR2(35)", NotNull: true},
				{Name: "JOB_TITLE_JP", Type: "VARCHAR2(35)"},
				{Name: "MIN_SALARY", Type: "NUMBER(6)"},
				{Name: "MAX_SALARY", Type: "NUMBER(6)"},
				{Name: "JOB_DESCRIPTION", Type: "CLOB"},
				{Name: "JOB_DESCRIPTION_JP", Type: "CLOB"},
			},
			PrimaryKey: []string{"JOB_ID"},
		},
		{
			Name:  "EMPLOYEES",
			Owner: owner,
			Columns: []Column{
				{Name: "EMPLOYEE_ID", Type: "NUMBER(6)", NotNull: true},
				{Name: "FIRST_NAME", Type: "VARCHAR2(20)"},
				{Name: "LAST_NAME", Type: "VARCHAR2(25)", NotNull: true},
				{Name: "FIRST_NAME_JP", Type: "VARCHAR2(20)"},
				{Name: "LAST_NAME_JP", Type: "VARCHAR2(25)"},
				{Name: "EMAIL", Type: "VARCHAR2(25)", Unique: true},
				{Name: "PHONE_NUMBER", Type: "VARCHAR2(20)"},
				{Name: "HIRE_DATE", Type: "DATE", NotNull: true},
				{Name: "JOB_ID", Type: "NUMBER(6)", NotNull: true},
				{Name: "SALARY", Type: "NUMBER(8,2)"},
				{Name: "COMMISSION_PCT", Type: "NUMBER(2,2)"},
				{Name: "MANAGER_ID", Type: "NUMBER(6)"},
				{Name: "DEPARTMENT_ID", Type: "NUMBER(4)"},
				{Name: "NOTES_JP", Type: "CLOB"},
			},
			PrimaryKey: []string{"EMPLOYEE_ID"},
			ForeignKeys: []ForeignKey{
				{Name: "EMP_DEPT_FK", Column: "DEPARTMENT_ID", ReferencesTable: "DEPARTMENTS", ReferencesColumn: "DEPARTMENT_ID"},
				{Name: "EMP_JOB_FK", Column: "JOB_ID", ReferencesTable: "JOBS", ReferencesColumn: "JOB_ID"},
				{Name: "EMP_MANAGER_FK", Column: "MANAGER_ID", ReferencesTable: "EMPLOYEES", ReferencesColumn: "EMPLOYEE_ID"},
			},
		},
		{
			Name:  "PRODUCTS",
			Owner: owner,
			Columns: []Column{
				{Name: "PRODUCT_ID", Type: "NUMBER(6)", NotNull: true},
				{Name: "PRODUCT_NAME", Type: "VARCHAR2(50)", NotNull: true},
				{Name: "PRODUCT_NAME_JP", Type: "VARCHAR2(50)"},
				{Name: "DESCRIPTION", Type: "VARCHAR2(2000)"},
				{Name: "DESCRIPTION_JP", Type: "VARCHAR2(2000)"},
				{Name: "STANDARD_COST", Type: "NUMBER(9,2)"},
				{Name: "LIST_PRICE", Type: "NUMBER(9,2)"},
				{Name: "CREATED_DATE", Type: "DATE"},
				{Name: "MODIFIED_DATE", Type: "DATE"},
			},
			PrimaryKey: []string{"PRODUCT_ID"},
		},
		{
			Name:  "CUSTOMERS",
			Owner: owner,
			Columns: []Column{
				{Name: "CUSTOMER_ID", Type: "NUMBER(6)", NotNull: true},
				{Name: "FIRST_NAME", Type: "VARCHAR2(20)"},
				{Name: "LAST_NAME", Type: "VARCHAR2(25)", NotNull: true},
				{Name: "FIRST_NAME_JP", Type: "VARCHAR2(20)"},
				{Name: "LAST_NAME_JP", Type: "VARCHAR2(25)"},
				{Name: "EMAIL", Type: "VARCHAR2(50)", Unique: true},
				{Name: "PHONE", Type: "VARCHAR2(20)"},
				{Name: "ADDRESS", Type: "VARCHAR2(100)"},
				{Name: "ADDRESS_JP", Type: "VARCHAR2(100)"},
				{Name: "CITY", Type: "VARCHAR2(30)"},
				{Name: "CITY_JP", Type: "VARCHAR2(30)"},
				{Name: "POSTAL_CODE", Type: "VARCHAR2(10)"},
				{Name: "COUNTRY", Type: "VARCHAR2(20)"},
				{Name: "COUNTRY_JP", Type: "VARCHAR2(20)"},
				{Name: "CREDIT_LIMIT", Type: "NUMBER(9,2)"},
				{Name: "REGISTRATION_DATE", Type: "DATE"},
			},
			PrimaryKey: []string{"CUSTOMER_ID"},
		},
		{
			Name:  "ORDERS",
			Owner: owner,
			Columns: []Column{
				{Name: "ORDER_ID", Type: "NUMBER(12)", NotNull: true},
				{Name: "CUSTOMER_ID", Type: "NUMBER(6)", NotNull: true},
				{Name: "STATUS", Type: "VARCHAR2(20)", NotNull: true},
				{Name: "SALESPERSON_ID", Type: "NUMBER(6)"},
				{Name: "ORDER_DATE", Type: "DATE", NotNull: true},
				{Name: "SHIPPING_DATE", Type: "DATE"},
				{Name: "SHIPPING_ADDRESS", Type: "VARCHAR2(255)"},
				{Name: "SHIPPING_ADDRESS_JP", Type: "VARCHAR2(255)"},
				{Name: "SHIPPING_CITY", Type: "VARCHAR2(30)"},
				{Name: "SHIPPING_CITY_JP", Type: "VARCHAR2(30)"},
				{Name: "PAYMENT_METHOD", Type: "VARCHAR2(20)"},
				{Name: "ORDER_TOTAL", Type: "NUMBER(10,2)"},
				{Name: "NOTES", Type: "CLOB"},
				{Name: "NOTES_JP", Type: "CLOB"},
			},
			PrimaryKey: []string{"ORDER_ID"},
			ForeignKeys: []ForeignKey{
				{Name: "ORD_CUST_FK", Column: "CUSTOMER_ID", ReferencesTable: "CUSTOMERS", ReferencesColumn: "CUSTOMER_ID"},
				{Name: "ORD_EMP_FK", Column: "SALESPERSON_ID", ReferencesTable: "EMPLOYEES", ReferencesColumn: "EMPLOYEE_ID"},
			},
		},
		{
			Name:  "ORDER_ITEMS",
			Owner: owner,
			Columns: []Column{
				{Name: "ORDER_ITEM_ID", Type: "NUMBER(12)", NotNull: true},
				{Name: "ORDER_ID", Type: "NUMBER(12)", NotNull: true},
				{Name: "PRODUCT_ID", Type: "NUMBER(6)", NotNull: true},
				{Name: "UNIT_PRICE", Type: "NUMBER(10,2)", NotNull: true},
				{Name: "QUANTITY", Type: "NUMBER(8)", NotNull: true},
				{Name: "DISCOUNT_PCT", Type: "NUMBER(4,2)"},
				{Name: "LINE_TOTAL", Type: "NUMBER(10,2)"},
				{Name: "NOTES", Type: "VARCHAR2(500)"},
				{Name: "NOTES_JP", Type: "VARCHAR2(500)"},
			},
			PrimaryKey: []string{"ORDER_ITEM_ID"},
			ForeignKeys: []ForeignKey{
				{Name: "ORDITM_ORD_FK", Column: "ORDER_ID", ReferencesTable: "ORDERS", ReferencesColumn: "ORDER_ID"},
				{Name: "ORDITM_PROD_FK", Column: "PRODUCT_ID", ReferencesTable: "PRODUCTS", ReferencesColumn: "PRODUCT_ID"},
			},
		},
	}
}

// Sort orders tables so that every foreign-key target precedes its
// dependents. The input order is preserved where no dependency forces a
// move. A reference cycle (other than a self-reference) is an error.
func Sort(tables []Table) ([]Table, error) {
	byName := make(map[string]Table, len(tables))
	for _, t := range tables {
		byName[strings.ToUpper(t.Name)] = t
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(tables))
	sorted := make([]Table, 0, len(tables))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("foreign key cycle involving table %s", name)
		}
		t, ok := byName[name]
		if !ok {
			return fmt.Errorf("foreign key references unknown table %s", name)
		}
		state[name] = visiting
		for _, fk := range t.ForeignKeys {
			ref := strings.ToUpper(fk.ReferencesTable)
			if ref == name {
				continue // self-reference
			}
			if err := visit(ref); err != nil {
				return err
			}
		}
		state[name] = done
		sorted = append(sorted, t)
		return nil
	}

	for _, t := range tables {
		if err := visit(strings.ToUpper(t.Name)); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

// Validate checks the structural invariants of a table set: non-empty
// names and columns, primary-key columns that exist, and foreign keys
// that point at known tables and columns.
func Validate(tables []Table) error {
	byName := make(map[string]Table, len(tables))
	for _, t := range tables {
		if t.Name == "" {
			return fmt.Errorf("table with empty name")
		}
		if len(t.Columns) == 0 {
			return fmt.Errorf("table %s has no columns", t.Name)
		}
		byName[strings.ToUpper(t.Name)] = t
	}
	for _, t := range tables {
		for _, pk := range t.PrimaryKey {
			if _, ok := t.Column(pk); !ok {
				return fmt.Errorf("table %s: primary key column %s does not exist", t.Name, pk)
			}
		}
		for _, fk := range t.ForeignKeys {
			if _, ok := t.Column(fk.Column); !ok {
				return fmt.Errorf("table %s: foreign key column %s does not exist", t.Name, fk.Column)
			}
			ref, ok := byName[strings.ToUpper(fk.ReferencesTable)]
			if !ok {
				return fmt.Errorf("table %s: foreign key %s references unknown table %s", t.Name, fk.Name, fk.ReferencesTable)
			}
			if _, ok := ref.Column(fk.ReferencesColumn); !ok {
				return fmt.Errorf("table %s: foreign key %s references unknown column %s.%s",
					t.Name, fk.Name, fk.ReferencesTable, fk.ReferencesColumn)
			}
			// data synthesis draws foreign-key values from the referenced
			// table's key domain, so the target must be its single
			// primary-key column
			if len(ref.PrimaryKey) != 1 || !strings.EqualFold(ref.PrimaryKey[0], fk.ReferencesColumn) {
				return fmt.Errorf("table %s: foreign key %s must reference the single primary key column of %s, not %s",
					t.Name, fk.Name, fk.ReferencesTable, fk.ReferencesColumn)
			}
		}
	}
	return nil
}
