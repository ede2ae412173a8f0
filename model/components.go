package model

// CommitMessage is the commit message attached to every uploaded image.
const CommitMessage = "add image"

// Repo identifies the target repository and the directory images go into
type Repo struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
	Path  string `toml:"path"`
}

// Committer is the identity recorded on each content-creation commit
type Committer struct {
	Name  string `toml:"name" json:"name"`
	Email string `toml:"email" json:"email"`
}

// UploadRequest is the body of a PUT /repos/{owner}/{repo}/contents/{path} call.
type UploadRequest struct {
	Message   string    `json:"message"`
	Committer Committer `json:"committer"`
	Content   string    `json:"content"`
}
