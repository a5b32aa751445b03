package models

// Collection names in the document store.
const (
	CollectionBugReports         = "bugreports"
	CollectionContactSubmissions = "contactsubmissions"
	CollectionGameModes          = "gamemodes"
	CollectionServerRules        = "serverrules"
	CollectionSocialLinks        = "socialmedialinks"
)

// Record is a document stored in one of the collections above.
type Record interface {
	RecordID() string
}
