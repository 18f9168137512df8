package model

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusClosed     ContactStatus = "closed"
)

// Collection names a content table and its admin API segment.
type Collection string

const (
	CollectionPosts        Collection = "posts"
	CollectionNews         Collection = "news"
	CollectionSuccessCases Collection = "success-cases"
	CollectionHospitals    Collection = "hospitals"
	CollectionCategories   Collection = "categories"
	CollectionContacts     Collection = "contacts"
)
