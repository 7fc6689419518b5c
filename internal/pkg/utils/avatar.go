package utils

import "math/rand"

var avatarSeeds = []string{
	"Liam", "Olivia", "Noah", "Emma", "Oliver", "Charlotte", "James", "Amelia",
	"Elijah", "Sophia", "William", "Isabella", "Henry", "Ava", "Lucas", "Mia",
	"Benjamin", "Evelyn", "Theodore", "Harper", "Alexander", "Emily", "Daniel",
	"Madison", "Matthew", "Abigail", "Jackson", "David", "Elizabeth",
}

// RandomAvatarSeed picks a seed name for the register's generated avatar.
func RandomAvatarSeed() string {
	return avatarSeeds[rand.Intn(len(avatarSeeds))]
}
