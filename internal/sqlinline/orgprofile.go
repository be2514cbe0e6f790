package sqlinline

const QGetOrgProfile = `--sql 2d57432f-051f-422a-9fd7-a7d3be4959a9
select org_name, contact_phone, province, district, municipality, updated_at
from org_profile
where id = 1;
`

const QUpsertOrgProfile = `--sql 27f1016b-add7-46f2-a682-d083bdd12046
insert into org_profile (id, org_name, contact_phone, province, district, municipality, updated_at)
values (1, $1, $2, $3, $4, $5, now())
on conflict (id) do update
set org_name = excluded.org_name,
    contact_phone = excluded.contact_phone,
    province = excluded.province,
    district = excluded.district,
    municipality = excluded.municipality,
    updated_at = now();
`
