// Package menu drives a clinic through a numbered text menu, one operation
// per choice, reading answers line by line.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/hackgods/clinic-records/internal/clinic"
)

// errQuit ends the loop without reporting anything.
var errQuit = errors.New("quit")

type option struct {
	key    string
	label  string
	action func() error
}

type Menu struct {
	clinic  *clinic.Clinic
	in      *bufio.Scanner
	out     io.Writer
	options []option
}

func New(c *clinic.Clinic, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		clinic: c,
		in:     bufio.NewScanner(in),
		out:    out,
	}
	m.options = []option{
		{"1", "Register patient", m.registerPatient},
		{"2", "Register doctor", m.registerDoctor},
		{"3", "Add specialty to doctor", m.addSpecialty},
		{"4", "Schedule appointment", m.scheduleAppointment},
		{"5", "Issue prescription", m.issuePrescription},
		{"6", "View clinical history", m.viewHistory},
		{"7", "List patients", m.listPatients},
		{"8", "List doctors", m.listDoctors},
		{"9", "Cancel appointment", m.cancelAppointment},
		{"10", "Complete appointment", m.completeAppointment},
		{"0", "Exit", func() error { return errQuit }},
	}
	return m
}

// Run shows the menu until the user exits or input runs out. Clinic
// failures are printed and the loop continues; only a read error from the
// input is returned.
func (m *Menu) Run() error {
	m.println("Welcome to the clinic records system")
	for {
		choice, err := m.showMenu()
		if err != nil {
			return m.finish(err)
		}

		opt, ok := m.lookup(choice)
		if !ok {
			m.println("\nInvalid option. Please try again.")
			continue
		}

		err = opt.action()
		switch {
		case err == nil:
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			return m.finish(err)
		case errors.Is(err, clinic.ErrClinic):
			m.printf("\nERROR: %v\n", err)
		default:
			m.printf("\nUnexpected error: %v\n", err)
		}
	}
}

func (m *Menu) finish(err error) error {
	m.println("\nGoodbye!")
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) lookup(key string) (option, bool) {
	for _, o := range m.options {
		if o.key == key {
			return o, true
		}
	}
	return option{}, false
}

func (m *Menu) showMenu() (string, error) {
	m.println("\n" + strings.Repeat("=", 50))
	m.println("     CLINIC RECORDS")
	m.println(strings.Repeat("=", 50))
	for _, o := range m.options {
		m.printf("%s. %s\n", o.key, o.label)
	}
	m.println(strings.Repeat("=", 50))
	return m.ask("\nSelect an option: ")
}

// ask prints the prompt and returns the next trimmed line. It returns
// io.EOF once input is exhausted.
func (m *Menu) ask(prompt string) (string, error) {
	m.printf("%s", prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// askList reads a comma separated answer. Blank items are kept so the
// clinic can reject them.
func (m *Menu) askList(prompt string) ([]string, error) {
	line, err := m.ask(prompt)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func (m *Menu) header(title string) {
	bar := strings.Repeat("-", 30)
	m.printf("\n%s\n   %s\n%s\n", bar, title, bar)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) registerPatient() error {
	m.header("REGISTER PATIENT")

	name, err := m.ask("Full name: ")
	if err != nil {
		return err
	}
	id, err := m.ask("National ID: ")
	if err != nil {
		return err
	}
	born, err := m.ask("Birth date (dd/mm/yyyy): ")
	if err != nil {
		return err
	}

	p, err := m.clinic.RegisterPatient(name, id, born)
	if err != nil {
		return err
	}
	m.printf("\nPatient registered:\n   %s\n", p)
	return nil
}

func (m *Menu) registerDoctor() error {
	m.header("REGISTER DOCTOR")

	name, err := m.ask("Full name: ")
	if err != nil {
		return err
	}
	license, err := m.ask("License number: ")
	if err != nil {
		return err
	}

	d, err := m.clinic.RegisterDoctor(name, license)
	if err != nil {
		return err
	}
	m.printf("\nDoctor registered:\n   %s\n", d)
	m.println("\nRemember to add specialties with option 3.")
	return nil
}

func (m *Menu) addSpecialty() error {
	m.header("ADD SPECIALTY TO DOCTOR")

	if !m.showDoctors() {
		return nil
	}

	license, err := m.ask("\nDoctor license: ")
	if err != nil {
		return err
	}
	name, err := m.ask("Specialty name: ")
	if err != nil {
		return err
	}
	names := make([]string, len(clinic.AllWeekdays))
	for i, d := range clinic.AllWeekdays {
		names[i] = d.String()
	}
	m.printf("\nDays: %s\n", strings.Join(names, ", "))
	days, err := m.askList("Attendance days, comma separated: ")
	if err != nil {
		return err
	}

	s, err := m.clinic.AddSpecialtyToDoctor(license, name, days)
	if err != nil {
		return err
	}
	m.printf("\nSpecialty added:\n   %s\n", s)
	if d, err := m.clinic.FindDoctor(license); err == nil {
		m.printf("\nUpdated doctor:\n   %s\n", d)
	}
	return nil
}

func (m *Menu) scheduleAppointment() error {
	m.header("SCHEDULE APPOINTMENT")

	if !m.showPatients() || !m.showDoctors() {
		return nil
	}

	patientID, err := m.ask("\nPatient ID: ")
	if err != nil {
		return err
	}
	license, err := m.ask("Doctor license: ")
	if err != nil {
		return err
	}
	if d, err := m.clinic.FindDoctor(license); err == nil {
		m.printf("\nSpecialties of %s:\n", d.FullName())
		for _, s := range d.Specialties() {
			m.printf("- %s\n", s)
		}
	}
	date, err := m.ask("\nDate (dd/mm/yyyy): ")
	if err != nil {
		return err
	}
	at, err := m.ask("Time (HH:MM): ")
	if err != nil {
		return err
	}
	specialty, err := m.ask("Specialty: ")
	if err != nil {
		return err
	}

	a, err := m.clinic.ScheduleAppointment(patientID, license, date, at, specialty)
	if err != nil {
		return err
	}
	m.printf("\nAppointment scheduled:\n   %s\n   ID: %s\n", a, a.ID())
	return nil
}

func (m *Menu) issuePrescription() error {
	m.header("ISSUE PRESCRIPTION")

	if !m.showPatients() || !m.showDoctors() {
		return nil
	}

	patientID, err := m.ask("\nPatient ID: ")
	if err != nil {
		return err
	}
	license, err := m.ask("Doctor license: ")
	if err != nil {
		return err
	}
	date, err := m.ask("Date (dd/mm/yyyy): ")
	if err != nil {
		return err
	}
	meds, err := m.askList("Medications, comma separated: ")
	if err != nil {
		return err
	}
	instructions, err := m.ask("Instructions: ")
	if err != nil {
		return err
	}

	rx, err := m.clinic.IssuePrescription(patientID, license, date, meds, instructions)
	if err != nil {
		return err
	}
	m.printf("\nPrescription issued:\n   %s\n   Instructions: %s\n", rx, rx.Instructions())
	return nil
}

func (m *Menu) viewHistory() error {
	m.header("CLINICAL HISTORY")

	if !m.showPatients() {
		return nil
	}

	patientID, err := m.ask("\nPatient ID: ")
	if err != nil {
		return err
	}
	h, err := m.clinic.ClinicalHistory(patientID)
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", 60)
	m.printf("\n%s\n\n%s\n", h, rule)
	if appts := h.Appointments(); len(appts) > 0 {
		m.println("APPOINTMENTS:")
		for i, a := range appts {
			m.printf("%d. %s\n", i+1, a)
		}
	} else {
		m.println("No appointments recorded")
	}

	m.printf("\n%s\n", rule)
	if rxs := h.Prescriptions(); len(rxs) > 0 {
		m.println("PRESCRIPTIONS:")
		for i, rx := range rxs {
			m.printf("%d. %s\n    Instructions: %s\n", i+1, rx, rx.Instructions())
		}
	} else {
		m.println("No prescriptions recorded")
	}
	return nil
}

func (m *Menu) listPatients() error {
	m.header("PATIENTS")
	m.showPatients()
	return nil
}

func (m *Menu) listDoctors() error {
	m.header("DOCTORS")
	m.showDoctors()
	return nil
}

func (m *Menu) cancelAppointment() error {
	m.header("CANCEL APPOINTMENT")
	return m.changeStatus(m.clinic.CancelAppointment)
}

func (m *Menu) completeAppointment() error {
	m.header("COMPLETE APPOINTMENT")
	return m.changeStatus(m.clinic.CompleteAppointment)
}

func (m *Menu) changeStatus(change func(uuid.UUID) (*clinic.Appointment, error)) error {
	appts := m.clinic.Appointments()
	if len(appts) == 0 {
		m.println("No appointments scheduled.")
		return nil
	}
	for _, a := range appts {
		m.printf("%s  %s\n", a.ID(), a)
	}

	raw, err := m.ask("\nAppointment ID: ")
	if err != nil {
		return err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not an appointment id", clinic.ErrInvalidData, raw)
	}

	a, err := change(id)
	if err != nil {
		return err
	}
	m.printf("\nAppointment updated:\n   %s\n", a)
	return nil
}

func (m *Menu) showPatients() bool {
	patients := m.clinic.ListPatients()
	if len(patients) == 0 {
		m.println("No patients registered.")
		return false
	}
	m.printf("\nPatients (%d):\n", len(patients))
	for i, p := range patients {
		m.printf("%d. %s\n", i+1, p)
	}
	return true
}

func (m *Menu) showDoctors() bool {
	doctors := m.clinic.ListDoctors()
	if len(doctors) == 0 {
		m.println("No doctors registered.")
		return false
	}
	m.printf("\nDoctors (%d):\n", len(doctors))
	for i, d := range doctors {
		m.printf("%d. %s\n", i+1, d)
	}
	return true
}
