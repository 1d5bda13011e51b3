package main

import (
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/miron-alexandru/PlayStyleCompass/internal/config"
	"github.com/miron-alexandru/PlayStyleCompass/internal/database"
	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.ChatMessage{},
		&models.GlobalChatMessage{},
		&models.Notification{},
		&models.UserBlock{},
		&models.FriendRequest{},
		&models.Friendship{},
	)

	log.Println("Clearing tables (except users)...")
	if err := database.DB.Exec("TRUNCATE TABLE chat_messages, message_pins, global_chat_messages, notifications, user_blocks, friend_requests, friendships RESTART IDENTITY CASCADE").Error; err != nil {
		log.Fatalf("Failed to truncate: %v", err)
	}

	users := seedUsers()
	seedConversation(users[0], users[1])
	seedGlobalChat(users)
	seedNotifications(users[0])
	seedFriendship(users[0], users[2])

	log.Println("Seeding complete!")
}

func seedUsers() []models.User {
	log.Println("Seeding users...")

	specs := []struct {
		username, profileName, bio string
		genres                     []string
	}{
		{"alice_gamer", "Alice", "RPG enjoyer and completionist.", []string{"RPG", "Adventure"}},
		{"bob_plays", "Bob", "Mostly shooters, occasionally farming sims.", []string{"Shooter", "Simulation"}},
		{"carol_quest", "Carol", "Strategy all day.", []string{"Strategy", "Puzzle"}},
	}

	out := make([]models.User, 0, len(specs))
	for _, s := range specs {
		var user models.User
		if err := database.DB.Where("username = ?", s.username).First(&user).Error; err == nil {
			out = append(out, user)
			continue
		}

		user = models.User{
			Username:       s.username,
			Email:          fmt.Sprintf("%s@example.com", s.username),
			ProfileName:    s.profileName,
			Bio:            s.bio,
			FavoriteGenres: pq.StringArray(s.genres),
			Timezone:       "Europe/Bucharest",
		}
		if err := user.SetPassword("password123"); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := database.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", s.username, err)
		}
		out = append(out, user)
	}
	return out
}

func seedConversation(a, b models.User) {
	log.Println("Seeding private conversation...")

	lines := []struct {
		from, to models.User
		content  string
		age      time.Duration
	}{
		{a, b, "Hey, have you tried Hollow Knight yet?", 3 * time.Hour},
		{b, a, "Started it last night. The map is huge!", 2 * time.Hour},
		{a, b, "Wait until you reach the City of Tears.", 90 * time.Minute},
		{b, a, "No spoilers! Check this review: https://example.com/review", time.Hour},
	}

	for _, l := range lines {
		msg := models.ChatMessage{
			SenderID:    l.from.ID,
			RecipientID: l.to.ID,
			Content:     l.content,
		}
		if err := database.DB.Create(&msg).Error; err != nil {
			log.Fatalf("Failed to seed message: %v", err)
		}
		database.DB.Model(&msg).Update("created_at", time.Now().Add(-l.age))
	}
}

func seedGlobalChat(users []models.User) {
	log.Println("Seeding global chat...")

	lines := []string{
		"Anyone up for co-op tonight?",
		"Just finished Elden Ring, what a ride.",
		"Looking for strategy game recommendations!",
	}

	for i, content := range lines {
		msg := models.GlobalChatMessage{
			SenderID: users[i%len(users)].ID,
			Content:  content,
		}
		if err := database.DB.Create(&msg).Error; err != nil {
			log.Fatalf("Failed to seed global message: %v", err)
		}
	}
}

func seedNotifications(user models.User) {
	log.Println("Seeding notifications...")

	messages := []string{
		"Bob sent you a friend request.",
		"Your weekly recommendations are ready.",
	}
	for _, m := range messages {
		n := models.Notification{
			UserID:   user.ID,
			Message:  m,
			IsActive: true,
		}
		if err := database.DB.Create(&n).Error; err != nil {
			log.Fatalf("Failed to seed notification: %v", err)
		}
	}
}

func seedFriendship(a, b models.User) {
	log.Println("Seeding friendship...")

	ua, ub := a.ID, b.ID
	if ua > ub {
		ua, ub = ub, ua
	}
	f := models.Friendship{UserID: ua, FriendID: ub}
	if err := database.DB.Create(&f).Error; err != nil {
		log.Fatalf("Failed to seed friendship: %v", err)
	}
}
