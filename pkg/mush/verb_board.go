package mush

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/smartyhall/meshbbs/pkg/validate"
	"github.com/smartyhall/meshbbs/pkg/world"
)

// defaultBoard is the single shared bulletin board every player posts
// to; the spec's on-disk layout scopes boards by name, but the verb
// grammar (BOARD with no argument) only ever addresses one.
const defaultBoard = "general"

func registerBoardVerbs(v map[string]VerbHandler) {
	v["BOARD"] = handleBoard
	v["POST"] = handlePost
	v["READ"] = handleReadBoard
	v["MAIL"] = handleMail
	v["SEND"] = handleSendMail
	v["RMAIL"] = handleReadMail
	v["DMAIL"] = handleDeleteMail
}

func handleBoard(ctx *VerbContext) (string, error) {
	msgs, err := ctx.Store.ListBulletins(defaultBoard)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "The board is empty. Use POST <subject> <body> to start a thread.\n", nil
	}
	var b strings.Builder
	b.WriteString("Board:\n")
	for _, m := range msgs {
		fmt.Fprintf(&b, "  %s: %s (by %s)\n", m.ID, m.Subject, m.Author)
	}
	return b.String(), nil
}

func handlePost(ctx *VerbContext) (string, error) {
	subject := ctx.Arg(0)
	body := ctx.Rest(1)
	if subject == "" || body == "" {
		return "Usage: POST <subject> <body>\n", nil
	}
	subject, err := validate.SanitizeMessageContent(subject, world.MaxBulletinSubject)
	if err != nil {
		return "Subject too long.\n", nil
	}
	body, err = validate.SanitizeMessageContent(body, world.MaxBulletinBody)
	if err != nil {
		return "Body too long.\n", nil
	}
	msg := world.BulletinMessage{
		ID: uuid.NewString(), Board: defaultBoard, Author: ctx.Player.Username,
		Subject: subject, Body: body, PostedAt: ctx.Now,
	}
	if err := ctx.Store.PutBulletin(defaultBoard, msg); err != nil {
		return "", err
	}
	return fmt.Sprintf("Posted %s to the board.\n", msg.ID), nil
}

func handleReadBoard(ctx *VerbContext) (string, error) {
	id := ctx.Arg(0)
	if id == "" {
		return "Usage: READ <id>\n", nil
	}
	msg, err := ctx.Store.GetBulletin(defaultBoard, id)
	if err == world.ErrNotFound {
		return "No such post.\n", nil
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\nBy %s at %s\n%s\n", msg.Subject, msg.Author, msg.PostedAt.Format("01/02 15:04"), msg.Body), nil
}

func handleMail(ctx *VerbContext) (string, error) {
	folder := strings.ToLower(ctx.Arg(0))
	if folder == "" {
		folder = world.MailFolderInbox
	}
	if folder != world.MailFolderInbox && folder != world.MailFolderSent {
		return "Usage: MAIL [inbox|sent]\n", nil
	}
	msgs, err := ctx.Store.ListMail(folder, ctx.Player.Username)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("Your %s is empty.\n", folder), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", folder)
	for _, m := range msgs {
		marker := " "
		if m.Status == world.MailUnread {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s%s: %s (from %s)\n", marker, m.ID, m.Subject, m.Sender)
	}
	return b.String(), nil
}

func handleSendMail(ctx *VerbContext) (string, error) {
	to := ctx.Arg(0)
	subject := ctx.Arg(1)
	body := ctx.Rest(2)
	if to == "" || subject == "" || body == "" {
		return "Usage: SEND <to> <subject> <body>\n", nil
	}
	if strings.EqualFold(to, ctx.Player.Username) {
		return "You can't mail yourself.\n", nil
	}
	if _, err := ctx.Store.GetPlayer(to); err == world.ErrNotFound {
		return "No such player.\n", nil
	} else if err != nil {
		return "", err
	}
	subject, err := validate.SanitizeMessageContent(subject, world.MaxBulletinSubject)
	if err != nil {
		return "Subject too long.\n", nil
	}
	body, err = validate.SanitizeMessageContent(body, world.MaxBulletinBody)
	if err != nil {
		return "Body too long.\n", nil
	}
	msg := world.MailMessage{
		ID: uuid.NewString(), Sender: ctx.Player.Username, Recipient: to,
		Subject: subject, Body: body, SentAt: ctx.Now, Status: world.MailUnread,
	}
	if err := ctx.Store.SendMail(msg); err != nil {
		return "", err
	}
	return fmt.Sprintf("Mail sent to %s.\n", to), nil
}

func handleReadMail(ctx *VerbContext) (string, error) {
	id := ctx.Arg(0)
	if id == "" {
		return "Usage: RMAIL <id>\n", nil
	}
	msg, err := ctx.Store.GetMail(world.MailFolderInbox, ctx.Player.Username, id)
	if err == world.ErrNotFound {
		return "No such message.\n", nil
	} else if err != nil {
		return "", err
	}
	msg.Status = world.MailRead
	if err := ctx.Store.PutMail(world.MailFolderInbox, ctx.Player.Username, msg); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\nFrom %s at %s\n%s\n", msg.Subject, msg.Sender, msg.SentAt.Format("01/02 15:04"), msg.Body), nil
}

func handleDeleteMail(ctx *VerbContext) (string, error) {
	id := ctx.Arg(0)
	if id == "" {
		return "Usage: DMAIL <id>\n", nil
	}
	if err := ctx.Store.DeleteMail(world.MailFolderInbox, ctx.Player.Username, id); err != nil {
		return "", err
	}
	return "Message deleted.\n", nil
}
