package types

// Scope is an OAuth scope that can be requested from Medium.
type Scope string

const (
	ScopeBasicProfile     Scope = "basicProfile"
	ScopeListPublications Scope = "listPublications"
	ScopePublishPost      Scope = "publishPost"
	ScopeUploadImage      Scope = "uploadImage"
)

// Scopes lists every known Scope.
var Scopes = []Scope{ScopeBasicProfile, ScopeListPublications, ScopePublishPost, ScopeUploadImage}

// PublishStatus is the visibility of a post.
type PublishStatus string

const (
	PublishStatusPublic   PublishStatus = "public"
	PublishStatusDraft    PublishStatus = "draft"
	PublishStatusUnlisted PublishStatus = "unlisted"
)

var PublishStatuses = []PublishStatus{PublishStatusPublic, PublishStatusDraft, PublishStatusUnlisted}

// ContentFormat is the markup of a post's content.
type ContentFormat string

const (
	ContentFormatHTML     ContentFormat = "html"
	ContentFormatMarkdown ContentFormat = "markdown"
)

var ContentFormats = []ContentFormat{ContentFormatHTML, ContentFormatMarkdown}

// License is the license a post is published under.
type License string

const (
	LicenseAllRightsReserved License = "all-rights-reserved"
	LicenseCC40By            License = "cc-40-by"
	LicenseCC40BySA          License = "cc-40-by-sa"
	LicenseCC40ByND          License = "cc-40-by-nd"
	LicenseCC40ByNC          License = "cc-40-by-nc"
	LicenseCC40ByNCND        License = "cc-40-by-nc-nd"
	LicenseCC40ByNCSA        License = "cc-40-by-nc-sa"
	LicenseCC40Zero          License = "cc-40-zero"
	LicensePublicDomain      License = "public-domain"
)

var Licenses = []License{
	LicenseAllRightsReserved,
	LicenseCC40By,
	LicenseCC40BySA,
	LicenseCC40ByND,
	LicenseCC40ByNC,
	LicenseCC40ByNCND,
	LicenseCC40ByNCSA,
	LicenseCC40Zero,
	LicensePublicDomain,
}
