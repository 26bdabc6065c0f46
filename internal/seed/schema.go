package seed

// UserEntry is one user in the seed YAML.
type UserEntry struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`

	DisplayName    string   `yaml:"display_name"`
	Bio            string   `yaml:"bio"`
	FavoriteGenres []string `yaml:"favorite_genres"`

	Bookmarks []MovieEntry `yaml:"bookmarks"`
	Watched   []MovieEntry `yaml:"watched"`
}

// MovieEntry is a movie reference in the seed YAML.
type MovieEntry struct {
	MovieID int    `yaml:"movie_id"`
	Title   string `yaml:"title"`
	Poster  string `yaml:"poster"`
	Rating  int    `yaml:"rating"`
}

// File is the root structure of users.yaml.
type File struct {
	Users []UserEntry `yaml:"users"`
}
