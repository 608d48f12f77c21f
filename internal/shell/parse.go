package shell

import (
	"errors"
	"fmt"
	"strconv"

	"linkpage/internal/editor"
	"linkpage/internal/models"
)

var errUsage = errors.New("niepoprawne użycie, wpisz 'help'")

// parseSet handles "set <field> <value...>".
func parseSet(args []string, line string) (editor.Edit, error) {
	if len(args) < 1 {
		return nil, errUsage
	}
	value := rest(line, 2)
	switch args[0] {
	case "status":
		return editor.SetStatusText(value), nil
	case "stream":
		return editor.SetStreamInfo(value), nil
	case "name":
		return editor.SetProfileName(value), nil
	case "tagline":
		return editor.SetTagline(value), nil
	case "preferred":
		return editor.SetPreferred(value), nil
	case "available":
		if len(args) < 2 {
			return nil, errUsage
		}
		b, err := parseBool(args[1])
		if err != nil {
			return nil, err
		}
		return editor.SetAvailable(b), nil
	case "stat":
		if len(args) < 3 {
			return nil, errUsage
		}
		metric := models.Metric(args[1])
		value := rest(line, 4)
		switch args[2] {
		case "value":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("niepoprawna liczba %q", value)
			}
			return editor.SetStatValue{Metric: metric, Value: n}, nil
		case "display":
			return editor.SetStatDisplay{Metric: metric, Display: value}, nil
		case "suffix":
			return editor.SetStatSuffix{Metric: metric, Suffix: value}, nil
		}
	}
	return nil, errUsage
}

// parseLink handles "link <op> ...".
func parseLink(args []string, line string) (editor.Edit, error) {
	if len(args) < 1 {
		return nil, errUsage
	}
	if args[0] == "add" {
		return editor.AddLink{Label: rest(line, 2)}, nil
	}
	if len(args) < 2 {
		return nil, errUsage
	}
	i, err := index(args[1])
	if err != nil {
		return nil, err
	}
	switch args[0] {
	case "del":
		return editor.DeleteLink(i), nil
	case "up":
		return editor.MoveLink{From: i, To: i - 1}, nil
	case "down":
		return editor.MoveLink{From: i, To: i + 1}, nil
	case "show":
		return editor.SetLinkVisible{Index: i, Visible: true}, nil
	case "hide":
		return editor.SetLinkVisible{Index: i, Visible: false}, nil
	case "set":
		if len(args) < 3 {
			return nil, errUsage
		}
		return editor.SetLinkField{Index: i, Field: editor.LinkField(args[2]), Value: rest(line, 4)}, nil
	}
	return nil, errUsage
}

// parseNotif handles "notif <op> ...".
func parseNotif(args []string, line string) (editor.Edit, error) {
	if len(args) < 1 {
		return nil, errUsage
	}
	if args[0] == "add" {
		var v models.NotificationVariant
		if len(args) > 1 {
			v = models.NotificationVariant(args[1])
		}
		return editor.AddNotification{Variant: v}, nil
	}
	if len(args) < 2 {
		return nil, errUsage
	}
	i, err := index(args[1])
	if err != nil {
		return nil, err
	}
	switch args[0] {
	case "del":
		return editor.DeleteNotification(i), nil
	case "up":
		return editor.MoveNotification{From: i, To: i - 1}, nil
	case "down":
		return editor.MoveNotification{From: i, To: i + 1}, nil
	case "show":
		return editor.SetNotificationVisible{Index: i, Visible: true}, nil
	case "hide":
		return editor.SetNotificationVisible{Index: i, Visible: false}, nil
	case "set":
		if len(args) < 3 {
			return nil, errUsage
		}
		return editor.SetNotificationField{Index: i, Field: editor.NotificationField(args[2]), Value: rest(line, 4)}, nil
	case "variant":
		if len(args) < 3 {
			return nil, errUsage
		}
		return editor.SetNotificationVariant{Index: i, Variant: models.NotificationVariant(args[2])}, nil
	case "dismissible":
		if len(args) < 3 {
			return nil, errUsage
		}
		b, err := parseBool(args[2])
		if err != nil {
			return nil, err
		}
		return editor.SetNotificationDismissible{Index: i, Dismissible: b}, nil
	}
	return nil, errUsage
}
